package client

import (
	"context"
	"net/http"

	"github.com/douglas-germano/fitgen-sub000/internal/models"
)

// Achievements возвращает достижения пользователя с прогрессом.
func (c *Client) Achievements(ctx context.Context) ([]models.Achievement, error) {
	var out []models.Achievement
	if err := c.do(ctx, http.MethodGet, "/achievements", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}
