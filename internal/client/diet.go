package client

import (
	"context"
	"net/http"

	"github.com/douglas-germano/fitgen-sub000/internal/models"
)

// GenerateDiet запускает генерацию плана питания (AI на бэкенде).
func (c *Client) GenerateDiet(ctx context.Context, req models.GenerateDietRequest) (*models.DietPlan, error) {
	var out models.DietPlan
	if err := c.do(ctx, http.MethodPost, "/diet/generate", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// CurrentDiet возвращает актуальный план питания.
func (c *Client) CurrentDiet(ctx context.Context) (*models.DietPlan, error) {
	var out models.DietPlan
	if err := c.do(ctx, http.MethodGet, "/diet/current", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
