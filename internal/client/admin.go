package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/douglas-germano/fitgen-sub000/internal/models"
)

// AdminUsers возвращает список пользователей (только для администратора).
func (c *Client) AdminUsers(ctx context.Context, limit int) ([]models.AdminUser, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out []models.AdminUser
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &out, withQuery(q)); err != nil {
		return nil, err
	}

	return out, nil
}

// AdminSetUserActive включает/выключает учётную запись пользователя.
func (c *Client) AdminSetUserActive(ctx context.Context, userID string, active bool) error {
	req := models.SetUserActiveRequest{Active: active}
	return c.do(ctx, http.MethodPatch, "/admin/users/"+userID+"/active", req, nil)
}

// AdminAuditLog возвращает журнал аудита по фильтрам.
func (c *Client) AdminAuditLog(ctx context.Context, query models.AuditQuery) ([]models.AuditEntry, error) {
	q := url.Values{}
	if query.ActorID != "" {
		q.Set("actor_id", query.ActorID)
	}
	if query.Action != "" {
		q.Set("action", query.Action)
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}

	var out []models.AuditEntry
	if err := c.do(ctx, http.MethodGet, "/admin/audit", nil, &out, withQuery(q)); err != nil {
		return nil, err
	}

	return out, nil
}

// AdminCreateExercise добавляет упражнение в каталог.
func (c *Client) AdminCreateExercise(ctx context.Context, req models.UpsertExerciseRequest) (*models.Exercise, error) {
	var out models.Exercise
	if err := c.do(ctx, http.MethodPost, "/admin/exercises", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// AdminUpdateExercise обновляет упражнение каталога.
func (c *Client) AdminUpdateExercise(ctx context.Context, id string, req models.UpsertExerciseRequest) (*models.Exercise, error) {
	var out models.Exercise
	if err := c.do(ctx, http.MethodPut, "/admin/exercises/"+id, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// AdminDeleteExercise удаляет упражнение из каталога.
func (c *Client) AdminDeleteExercise(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/exercises/"+id, nil, nil)
}

// AdminBroadcast рассылает уведомление всем пользователям.
func (c *Client) AdminBroadcast(ctx context.Context, req models.BroadcastRequest) (*models.BroadcastResponse, error) {
	var out models.BroadcastResponse
	if err := c.do(ctx, http.MethodPost, "/admin/broadcast", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
