package client

import (
	"context"
	"net/http"

	"github.com/douglas-germano/fitgen-sub000/internal/models"
)

// Register регистрирует пользователя и возвращает пару токенов.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenPair, error) {
	var out models.TokenPair
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Login выполняет вход по email+пароль.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.TokenPair, error) {
	var out models.TokenPair
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// RefreshSession обменивает refresh-токен на новую пару.
//
// Токен передаётся явным bearer-заголовком (не через TokenSource):
// access-токен в этот момент может быть уже просрочен.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var out models.TokenPair
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, &out, withBearer(refreshToken)); err != nil {
		return nil, err
	}

	return &out, nil
}

// Logout отзывает refresh-токен на бэкенде.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, withBearer(refreshToken))
}

// CurrentProfile возвращает профиль текущего пользователя.
func (c *Client) CurrentProfile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateProfile обновляет профиль текущего пользователя.
func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodPatch, "/users/me", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
