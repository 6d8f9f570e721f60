// session управляет жизненным циклом пары токенов на стороне клиента:
// хранение через storage.Store, чтение exp из access-токена, фоновое
// обновление до истечения срока и принудительный выход при
// недействительном refresh-токене.
//
// Пакет не держит токены в памяти: каждая операция читает их из
// хранилища заново. Единственный разделяемый ресурс — записи в Store;
// конкурентные попытки обновления схлопываются в один сетевой вызов
// через singleflight (см. manager.go).
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/douglas-germano/fitgen-sub000/internal/storage"
	logctx "github.com/douglas-germano/fitgen-sub000/pkg/log"
)

// Логические ключи в storage.Store; полные имена с префиксом —
// "fitgen_token" и "fitgen_refresh_token".
const (
	KeyAccessToken  = "token"
	KeyRefreshToken = "refresh_token"
)

var (
	// ErrNoSession — в хранилище нет refresh-токена: пользователь не входил
	// либо уже вышел.
	ErrNoSession = errors.New("no session")
)

// Session — доступ к паре токенов поверх выбранного бэкенда хранения.
type Session struct {
	store storage.Store
}

// NewSession создаёт сессию поверх хранилища.
func NewSession(store storage.Store) *Session {
	return &Session{store: store}
}

// AccessToken возвращает текущий access-токен или "" при его отсутствии.
//
// Ошибки чтения деградируют до "" (= не авторизован), а не пробрасываются:
// сломанное хранилище не должно ронять вызов API — запрос просто уйдёт
// без авторизации и получит честный 401.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	const op = "session.Session.AccessToken"

	v, err := s.store.Get(ctx, KeyAccessToken)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logctx.From(ctx).Warn("token_read_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}

		return "", nil
	}

	return v, nil
}

// RefreshToken возвращает refresh-токен; деградация та же, что и у AccessToken.
func (s *Session) RefreshToken(ctx context.Context) string {
	const op = "session.Session.RefreshToken"

	v, err := s.store.Get(ctx, KeyRefreshToken)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logctx.From(ctx).Warn("refresh_token_read_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}

		return ""
	}

	return v
}

// SetTokens сохраняет пару токенов после логина/регистрации.
// Пустой refresh-токен не перезаписывает существующий (бэкенд мог
// не ротировать его при обновлении). Ошибки записи пробрасываются.
func (s *Session) SetTokens(ctx context.Context, accessToken, refreshToken string) error {
	const op = "session.Session.SetTokens"

	if err := s.store.Set(ctx, KeyAccessToken, accessToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if refreshToken != "" {
		if err := s.store.Set(ctx, KeyRefreshToken, refreshToken); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// Clear удаляет оба токена. Ошибки удаления пробрасываются.
func (s *Session) Clear(ctx context.Context) error {
	const op = "session.Session.Clear"

	if err := s.store.Delete(ctx, KeyAccessToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.Delete(ctx, KeyRefreshToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ExpiresIn возвращает остаток жизни access-токена.
// ok=false — токена нет либо payload нечитаем.
func (s *Session) ExpiresIn(ctx context.Context) (time.Duration, bool) {
	token, _ := s.AccessToken(ctx)
	if token == "" {
		return 0, false
	}

	exp, ok := tokenExpiry(token)
	if !ok {
		return 0, false
	}

	return time.Until(exp), true
}
