// client — тонкая обёртка над REST API FitGen.
//
// Все вызовы проходят через do(): JSON-тела, bearer-авторизация через
// TokenSource, X-Request-Id на каждый запрос, строгое декодирование
// ответа. Любой не-2xx ответ превращается в *APIError с HTTP-статусом
// и безопасным сообщением из тела ({message|msg|error}).
//
// Пакет не содержит бизнес-логики: вся она на бэкенде. Клиент лишь
// типизирует контракт и унифицирует ошибки.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	logctx "github.com/douglas-germano/fitgen-sub000/pkg/log"
)

// DefaultBaseURL — запасной адрес API, если конфигурация его не задала.
const DefaultBaseURL = "https://api.fitgen.app/api/v1"

// TokenSource отдаёт текущий access-токен для авторизации запроса.
// Пустая строка означает "не авторизован" — запрос уйдёт без заголовка.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// APIError — унифицированная ошибка API-вызова.
type APIError struct {
	// Status — HTTP-статус ответа.
	Status int
	// Code — машиночитаемый код из тела, если бэкенд его прислал.
	Code string
	// Message — безопасное человекочитаемое описание.
	Message string
	// RequestID — X-Request-Id запроса (для привязки к логам бэкенда).
	RequestID string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
	}

	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// IsUnauthenticated — ответ 401: access-токен отсутствует/просрочен/отозван.
func IsUnauthenticated(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsTerminalAuth — 401/422 от refresh-эндпойнта: refresh-токен недействителен,
// сессию восстановить нельзя.
func IsTerminalAuth(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.Status == http.StatusUnauthorized ||
		apiErr.Status == http.StatusUnprocessableEntity
}

// IsTransient — 5xx или сетевой сбой: имеет смысл повторить позже.
func IsTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}

	// Не-APIError от do() — транспортный сбой (DNS, connection refused, таймаут).
	return err != nil
}

// Options — параметры сборки клиента.
type Options struct {
	// Timeout — таймаут одного HTTP-запроса; 0 — значение по умолчанию (15s).
	Timeout time.Duration
	// HTTPClient — готовый *http.Client (тесты); имеет приоритет над Timeout.
	HTTPClient *http.Client
	// UserAgent — значение User-Agent; пустое — "fitgen-client".
	UserAgent string
}

// Client — клиент FitGen API.
type Client struct {
	baseURL   string
	httpc     *http.Client
	tokens    TokenSource
	userAgent string
}

// New создаёт клиент. baseURL без завершающего "/"; пустой — DefaultBaseURL.
// tokens может быть nil — тогда все запросы уходят неавторизованными.
func New(baseURL string, tokens TokenSource, opts Options) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpc := opts.HTTPClient
	if httpc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpc = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "fitgen-client"
	}

	return &Client{
		baseURL:   baseURL,
		httpc:     httpc,
		tokens:    tokens,
		userAgent: userAgent,
	}
}

// BaseURL возвращает базовый адрес API.
func (c *Client) BaseURL() string { return c.baseURL }

// requestOption — настройка отдельного запроса.
type requestOption func(*requestConfig)

type requestConfig struct {
	bearer string // явный токен вместо TokenSource (refresh-эндпойнт)
	query  url.Values
}

// withBearer подставляет явный bearer-токен (refresh-токен для /auth/refresh).
func withBearer(token string) requestOption {
	return func(rc *requestConfig) { rc.bearer = token }
}

// withQuery добавляет query-параметры.
func withQuery(q url.Values) requestOption {
	return func(rc *requestConfig) { rc.query = q }
}

// do выполняет запрос и декодирует ответ.
//
// in == nil — без тела; out == nil — тело ответа игнорируется.
// Не-2xx — всегда *APIError; транспортные сбои возвращаются как есть.
func (c *Client) do(ctx context.Context, method, path string, in, out any, opts ...requestOption) error {
	const op = "client.do"

	var rc requestConfig
	for _, o := range opts {
		o(&rc)
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(rc.query) > 0 {
		u += "?" + rc.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	switch {
	case rc.bearer != "":
		req.Header.Set("Authorization", "Bearer "+rc.bearer)
	case c.tokens != nil:
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("%s: token source: %w", op, err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %s %s: %w", op, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp)
		apiErr.RequestID = requestID

		logctx.From(ctx).Debug("api_error",
			slog.String("op", op),
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", apiErr.Status),
			slog.String("request_id", requestID),
		)

		return apiErr
	}

	if out == nil {
		// Дочитываем тело, чтобы соединение вернулось в пул.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%s: decode %s %s: %w", op, method, path, err)
	}

	return nil
}

// parseAPIError разбирает тело ошибки: бэкенд присылает одно из полей
// message / msg / error плюс опциональный code.
func parseAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Err     string `json:"error"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}

	switch {
	case body.Message != "":
		apiErr.Message = body.Message
	case body.Msg != "":
		apiErr.Message = body.Msg
	case body.Err != "":
		apiErr.Message = body.Err
	}
	apiErr.Code = body.Code

	return apiErr
}
