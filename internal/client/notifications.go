package client

import (
	"context"
	"net/http"

	"github.com/douglas-germano/fitgen-sub000/internal/models"
)

// Notifications возвращает уведомления пользователя.
func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// MarkNotificationRead помечает уведомление прочитанным.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/notifications/"+id+"/read", nil, nil)
}
