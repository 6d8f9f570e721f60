package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/douglas-germano/fitgen-sub000/internal/models"
)

// LogMetric записывает замер тела.
func (c *Client) LogMetric(ctx context.Context, req models.LogMetricRequest) (*models.BodyMetric, error) {
	var out models.BodyMetric
	if err := c.do(ctx, http.MethodPost, "/metrics", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// MetricsHistory возвращает историю замеров (limit <= 0 — дефолт бэкенда).
func (c *Client) MetricsHistory(ctx context.Context, limit int) ([]models.BodyMetric, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out []models.BodyMetric
	if err := c.do(ctx, http.MethodGet, "/metrics", nil, &out, withQuery(q)); err != nil {
		return nil, err
	}

	return out, nil
}
