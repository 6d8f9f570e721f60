package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/douglas-germano/fitgen-sub000/internal/models"
)

// SendChat отправляет сообщение AI-тренеру и возвращает его ответ.
func (c *Client) SendChat(ctx context.Context, content string) (*models.ChatMessage, error) {
	var out models.ChatMessage
	req := models.SendChatRequest{Content: content}
	if err := c.do(ctx, http.MethodPost, "/chat", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ChatHistory возвращает историю диалога (limit <= 0 — дефолт бэкенда).
func (c *Client) ChatHistory(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out []models.ChatMessage
	if err := c.do(ctx, http.MethodGet, "/chat", nil, &out, withQuery(q)); err != nil {
		return nil, err
	}

	return out, nil
}
