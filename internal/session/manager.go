package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/douglas-germano/fitgen-sub000/internal/client"
	"github.com/douglas-germano/fitgen-sub000/internal/models"
	logctx "github.com/douglas-germano/fitgen-sub000/pkg/log"
)

// Refresher обменивает refresh-токен на новую пару токенов.
// Реализуется client.Client.
type Refresher interface {
	RefreshSession(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// Options — параметры менеджера обновления.
type Options struct {
	// CheckInterval — период фоновой проверки; 0 — 5 минут.
	CheckInterval time.Duration
	// MaxRetries — число повторов при транзиентных сбоях; 0 — 3.
	MaxRetries int
	// RetryStep — шаг линейного backoff (задержка = (попытка+1)*шаг); 0 — 2s.
	RetryStep time.Duration
	// OnLogout вызывается ровно один раз на терминальный сбой refresh-токена
	// (аналог редиректа на страницу логина). Может быть nil.
	OnLogout func()
}

const (
	defaultCheckInterval = 5 * time.Minute
	defaultMaxRetries    = 3
	defaultRetryStep     = 2 * time.Second

	// Частота heartbeat-тика и порог скачка часов, по которому
	// распознаётся пробуждение машины после сна (аналог события
	// visibilitychange у браузерного клиента).
	heartbeatEvery = 30 * time.Second
	suspendSlack   = 2 * heartbeatEvery
)

// Manager держит access-токен валидным: периодическая проверка,
// внеплановые проверки по Wake(), обновление с ограниченным числом
// повторов и принудительный выход при недействительном refresh-токене.
//
// Конкурентные триггеры (тик таймера, Wake, ручной Refresh) схлопываются
// в один сетевой вызов через singleflight.
type Manager struct {
	session   *Session
	refresher Refresher

	checkInterval time.Duration
	maxRetries    int
	retryStep     time.Duration
	onLogout      func()

	sf   singleflight.Group
	wake chan struct{}

	// Подменяются в тестах: время и ожидание между повторами.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewManager создаёт менеджер обновления поверх сессии и refresher-а.
func NewManager(sess *Session, r Refresher, opts Options) *Manager {
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = defaultCheckInterval
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryStep <= 0 {
		opts.RetryStep = defaultRetryStep
	}

	return &Manager{
		session:       sess,
		refresher:     r,
		checkInterval: opts.CheckInterval,
		maxRetries:    opts.MaxRetries,
		retryStep:     opts.RetryStep,
		onLogout:      opts.OnLogout,
		wake:          make(chan struct{}, 1),
		now:           time.Now,
		sleep:         sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ShouldRefresh — true, если access-токен есть и до его истечения
// меньше RefreshBefore.
func (m *Manager) ShouldRefresh(ctx context.Context) bool {
	token, _ := m.session.AccessToken(ctx)
	if token == "" {
		return false
	}

	return shouldRefresh(token, m.now())
}

// Refresh обновляет пару токенов по refresh-токену.
//
// Возвращает true, если новый access-токен сохранён. false без ошибки —
// либо refresh-токена нет (не залогинены), либо он недействителен
// (сессия завершена, OnLogout вызван). false с ошибкой — транзиентный
// сбой, повторы исчерпаны, токены не тронуты.
//
// Конкурентные вызовы коалесцируются: все ждут один сетевой вызов.
func (m *Manager) Refresh(ctx context.Context) (bool, error) {
	v, err, _ := m.sf.Do("refresh", func() (any, error) {
		return m.doRefresh(ctx)
	})
	if err != nil {
		return false, err
	}

	return v.(bool), nil
}

func (m *Manager) doRefresh(ctx context.Context) (bool, error) {
	const op = "session.Manager.Refresh"

	lg := logctx.From(ctx)

	refreshToken := m.session.RefreshToken(ctx)
	if refreshToken == "" {
		lg.Debug("refresh_skipped_no_session", slog.String("op", op))
		return false, nil
	}

	for attempt := 0; ; attempt++ {
		pair, err := m.refresher.RefreshSession(ctx, refreshToken)
		if err == nil {
			if err := m.session.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
				return false, fmt.Errorf("%s: %w", op, err)
			}

			lg.Info("token_refreshed", slog.String("op", op))
			return true, nil
		}

		// 401/422 от refresh-эндпойнта: refresh-токен недействителен,
		// повторять бессмысленно — завершаем сессию.
		if client.IsTerminalAuth(err) {
			lg.Warn("refresh_token_rejected",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)

			if cerr := m.session.Clear(ctx); cerr != nil {
				lg.Error("session_clear_failed",
					slog.String("op", op),
					slog.String("err", cerr.Error()),
				)
			}

			if m.onLogout != nil {
				m.onLogout()
			}

			return false, nil
		}

		// Транзиентный сбой (5xx/сеть): повторяем с линейным backoff,
		// токены не трогаем — выходить из сессии из-за проблем сервера нельзя.
		if attempt >= m.maxRetries {
			lg.Warn("refresh_retries_exhausted",
				slog.String("op", op),
				slog.Int("attempts", attempt+1),
				slog.String("err", err.Error()),
			)

			return false, fmt.Errorf("%s: %w", op, err)
		}

		delay := time.Duration(attempt+1) * m.retryStep
		lg.Debug("refresh_retry_scheduled",
			slog.String("op", op),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
		)

		if err := m.sleep(ctx, delay); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}
}

// Logout завершает сессию локально: чистит токены и дёргает OnLogout.
// Отзыв refresh-токена на бэкенде — забота вызывающего (см. cmd).
func (m *Manager) Logout(ctx context.Context) error {
	const op = "session.Manager.Logout"

	if err := m.session.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if m.onLogout != nil {
		m.onLogout()
	}

	return nil
}

// Wake запрашивает внеплановую проверку токена (восстановление сети,
// возврат приложения на передний план). Неблокирующий; повторные
// вызовы до обработки первого схлопываются.
func (m *Manager) Wake() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Start запускает фоновый цикл проверки и возвращает идемпотентную
// функцию остановки: первый вызов гасит цикл и дожидается его выхода,
// последующие — no-op.
func (m *Manager) Start(ctx context.Context) func() {
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go m.run(runCtx, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func (m *Manager) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	heartbeat := time.NewTicker(heartbeatEvery)
	defer heartbeat.Stop()

	last := m.now()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			m.checkAndRefresh(ctx)

		case <-m.wake:
			m.checkAndRefresh(ctx)

		case <-heartbeat.C:
			// Большой скачок стенных часов между тиками — машина спала;
			// проверяем токен сразу, не дожидаясь основного тика.
			now := m.now()
			if now.Sub(last) > suspendSlack {
				m.checkAndRefresh(ctx)
			}
			last = now
		}
	}
}

func (m *Manager) checkAndRefresh(ctx context.Context) {
	const op = "session.Manager.checkAndRefresh"

	if !m.ShouldRefresh(ctx) {
		return
	}

	if _, err := m.Refresh(ctx); err != nil {
		// Транзиентный сбой: молчаливо отдаём следующей проверке.
		logctx.From(ctx).Debug("scheduled_refresh_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
}
