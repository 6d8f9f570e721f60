package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/douglas-germano/fitgen-sub000/internal/models"
)

// LogWorkout записывает тренировку.
func (c *Client) LogWorkout(ctx context.Context, req models.LogWorkoutRequest) (*models.Workout, error) {
	var out models.Workout
	if err := c.do(ctx, http.MethodPost, "/workouts", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Workouts возвращает последние тренировки (limit <= 0 — дефолт бэкенда).
func (c *Client) Workouts(ctx context.Context, limit int) ([]models.Workout, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out []models.Workout
	if err := c.do(ctx, http.MethodGet, "/workouts", nil, &out, withQuery(q)); err != nil {
		return nil, err
	}

	return out, nil
}

// Exercises возвращает каталог упражнений, опционально по группе мышц.
func (c *Client) Exercises(ctx context.Context, muscleGroup string) ([]models.Exercise, error) {
	q := url.Values{}
	if muscleGroup != "" {
		q.Set("muscle_group", muscleGroup)
	}

	var out []models.Exercise
	if err := c.do(ctx, http.MethodGet, "/exercises", nil, &out, withQuery(q)); err != nil {
		return nil, err
	}

	return out, nil
}
