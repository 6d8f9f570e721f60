package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/douglas-germano/fitgen-sub000/internal/models"
)

// LogWater записывает порцию воды.
func (c *Client) LogWater(ctx context.Context, req models.LogWaterRequest) (*models.HydrationDay, error) {
	var out models.HydrationDay
	if err := c.do(ctx, http.MethodPost, "/hydration", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// HydrationByDate возвращает дневной итог по воде.
func (c *Client) HydrationByDate(ctx context.Context, date string) (*models.HydrationDay, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}

	var out models.HydrationDay
	if err := c.do(ctx, http.MethodGet, "/hydration", nil, &out, withQuery(q)); err != nil {
		return nil, err
	}

	return &out, nil
}

// SetHydrationGoal устанавливает дневную цель по воде.
func (c *Client) SetHydrationGoal(ctx context.Context, goalMl int) error {
	req := models.SetHydrationGoalRequest{GoalMl: goalMl}
	return c.do(ctx, http.MethodPut, "/hydration/goal", req, nil)
}
