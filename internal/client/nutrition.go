package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/douglas-germano/fitgen-sub000/internal/models"
)

// LogMeal записывает приём пищи.
func (c *Client) LogMeal(ctx context.Context, req models.LogMealRequest) (*models.Meal, error) {
	var out models.Meal
	if err := c.do(ctx, http.MethodPost, "/nutrition/meals", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// MealsByDate возвращает приёмы пищи за дату (YYYY-MM-DD).
func (c *Client) MealsByDate(ctx context.Context, date string) ([]models.Meal, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}

	var out []models.Meal
	if err := c.do(ctx, http.MethodGet, "/nutrition/meals", nil, &out, withQuery(q)); err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteMeal удаляет запись о приёме пищи.
func (c *Client) DeleteMeal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/nutrition/meals/"+id, nil, nil)
}

// NutritionSummary возвращает дневную сводку по питанию.
func (c *Client) NutritionSummary(ctx context.Context, date string) (*models.NutritionSummary, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}

	var out models.NutritionSummary
	if err := c.do(ctx, http.MethodGet, "/nutrition/summary", nil, &out, withQuery(q)); err != nil {
		return nil, err
	}

	return &out, nil
}

// EstimateMeal запрашивает AI-оценку макронутриентов по текстовому описанию.
// Сама оценка выполняется на бэкенде; клиент только передаёт описание.
func (c *Client) EstimateMeal(ctx context.Context, description string) (*models.MealEstimate, error) {
	var out models.MealEstimate
	req := models.EstimateMealRequest{Description: description}
	if err := c.do(ctx, http.MethodPost, "/nutrition/estimate", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
