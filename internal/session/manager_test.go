package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/douglas-germano/fitgen-sub000/internal/client"
	"github.com/douglas-germano/fitgen-sub000/internal/models"
	"github.com/douglas-germano/fitgen-sub000/internal/storage"
	"github.com/douglas-germano/fitgen-sub000/internal/storage/memory"
)

// refresherFunc — функциональный дублёр Refresher.
type refresherFunc func(ctx context.Context, refreshToken string) (*models.TokenPair, error)

func (f refresherFunc) RefreshSession(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	return f(ctx, refreshToken)
}

// newTestManager — менеджер с фиктивным sleep: задержки записываются,
// реального ожидания нет.
func newTestManager(sess *Session, r Refresher, opts Options) (*Manager, *[]time.Duration) {
	m := NewManager(sess, r, opts)

	delays := &[]time.Duration{}
	m.sleep = func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}

	return m, delays
}

func seedSession(t *testing.T, sess *Session, access, refresh string) {
	t.Helper()
	require.NoError(t, sess.SetTokens(context.Background(), access, refresh))
}

func TestManager_Refresh_NoRefreshToken_NoNetworkCall(t *testing.T) {
	t.Parallel()

	var calls int32
	r := refresherFunc(func(context.Context, string) (*models.TokenPair, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("must not be called")
	})

	sess := NewSession(memory.New())
	mgr, _ := newTestManager(sess, r, Options{})

	ok, err := mgr.Refresh(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, atomic.LoadInt32(&calls))
}

func TestManager_Refresh_TerminalAuth_ClearsAndLogsOut(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusUnprocessableEntity} {
		status := status
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()

			var calls int32
			r := refresherFunc(func(_ context.Context, rt string) (*models.TokenPair, error) {
				atomic.AddInt32(&calls, 1)
				require.Equal(t, "refresh-1", rt)
				return nil, &client.APIError{Status: status, Message: "invalid token"}
			})

			store := memory.New()
			sess := NewSession(store)
			seedSession(t, sess, "access-1", "refresh-1")

			var logouts int32
			mgr, delays := newTestManager(sess, r, Options{
				OnLogout: func() { atomic.AddInt32(&logouts, 1) },
			})

			ok, err := mgr.Refresh(ctx)
			require.NoError(t, err)
			require.False(t, ok)

			// Ровно одна попытка, без повторов и без задержек.
			require.EqualValues(t, 1, atomic.LoadInt32(&calls))
			require.Empty(t, *delays)

			// Оба токена стёрты, колбэк выхода вызван ровно один раз.
			_, gerr := store.Get(ctx, KeyAccessToken)
			require.ErrorIs(t, gerr, storage.ErrNotFound)
			_, gerr = store.Get(ctx, KeyRefreshToken)
			require.ErrorIs(t, gerr, storage.ErrNotFound)
			require.EqualValues(t, 1, atomic.LoadInt32(&logouts))
		})
	}
}

func TestManager_Refresh_TransientThenSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var calls int32
	r := refresherFunc(func(context.Context, string) (*models.TokenPair, error) {
		// Три 500 подряд, затем успех.
		if atomic.AddInt32(&calls, 1) <= 3 {
			return nil, &client.APIError{Status: http.StatusInternalServerError, Message: "boom"}
		}
		return &models.TokenPair{AccessToken: "access-2"}, nil
	})

	store := memory.New()
	sess := NewSession(store)
	seedSession(t, sess, "access-1", "refresh-1")

	mgr, delays := newTestManager(sess, r, Options{})

	ok, err := mgr.Refresh(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// Линейный backoff: 2s, 4s, 6s.
	require.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second}, *delays)
	require.EqualValues(t, 4, atomic.LoadInt32(&calls))

	// Новый access сохранён, refresh-токен не тронут (бэкенд не ротировал).
	token, _ := sess.AccessToken(ctx)
	require.Equal(t, "access-2", token)
	require.Equal(t, "refresh-1", sess.RefreshToken(ctx))
}

func TestManager_Refresh_RetriesExhausted_NoLogout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var calls int32
	r := refresherFunc(func(context.Context, string) (*models.TokenPair, error) {
		atomic.AddInt32(&calls, 1)
		return nil, &client.APIError{Status: http.StatusInternalServerError, Message: "boom"}
	})

	store := memory.New()
	sess := NewSession(store)
	seedSession(t, sess, "access-1", "refresh-1")

	var logouts int32
	mgr, delays := newTestManager(sess, r, Options{
		OnLogout: func() { atomic.AddInt32(&logouts, 1) },
	})

	ok, err := mgr.Refresh(ctx)
	require.Error(t, err)
	require.False(t, ok)

	// 4 попытки всего (3 повтора), задержки 2s/4s/6s.
	require.EqualValues(t, 4, atomic.LoadInt32(&calls))
	require.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second}, *delays)

	// Транзиентный сбой не разлогинивает: токены на месте.
	token, _ := sess.AccessToken(ctx)
	require.Equal(t, "access-1", token)
	require.Equal(t, "refresh-1", sess.RefreshToken(ctx))
	require.Zero(t, atomic.LoadInt32(&logouts))
}

func TestManager_Refresh_NetworkErrorRetried(t *testing.T) {
	t.Parallel()

	var calls int32
	r := refresherFunc(func(context.Context, string) (*models.TokenPair, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("dial tcp: connection refused")
		}
		return &models.TokenPair{AccessToken: "access-2"}, nil
	})

	sess := NewSession(memory.New())
	seedSession(t, sess, "access-1", "refresh-1")

	mgr, delays := newTestManager(sess, r, Options{})

	ok, err := mgr.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []time.Duration{2 * time.Second}, *delays)
}

// Конкурентные триггеры схлопываются в один сетевой вызов.
func TestManager_Refresh_ConcurrentCallsCoalesce(t *testing.T) {
	t.Parallel()

	var calls int32
	entered := make(chan struct{})
	release := make(chan struct{})

	r := refresherFunc(func(context.Context, string) (*models.TokenPair, error) {
		atomic.AddInt32(&calls, 1)
		close(entered)
		<-release
		return &models.TokenPair{AccessToken: "access-2"}, nil
	})

	sess := NewSession(memory.New())
	seedSession(t, sess, "access-1", "refresh-1")

	mgr, _ := newTestManager(sess, r, Options{})

	var wg sync.WaitGroup
	results := make([]bool, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		ok, err := mgr.Refresh(context.Background())
		require.NoError(t, err)
		results[0] = ok
	}()

	// Дожидаемся, пока первый вызов окажется внутри refresher-а,
	// и только тогда запускаем второй.
	<-entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		ok, err := mgr.Refresh(context.Background())
		require.NoError(t, err)
		results[1] = ok
	}()

	// Небольшая пауза, чтобы второй вызов дошёл до singleflight.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
	require.Equal(t, []bool{true, true}, results)
}

func TestManager_Start_StopIdempotent(t *testing.T) {
	t.Parallel()

	sess := NewSession(memory.New())
	mgr := NewManager(sess, refresherFunc(func(context.Context, string) (*models.TokenPair, error) {
		return nil, errors.New("unused")
	}), Options{CheckInterval: 10 * time.Millisecond})

	stop := mgr.Start(context.Background())

	// Повторный вызов не паникует и не блокируется.
	stop()
	require.NotPanics(t, stop)
}

func TestManager_Scheduler_WakeTriggersRefresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	r := refresherFunc(func(context.Context, string) (*models.TokenPair, error) {
		return &models.TokenPair{AccessToken: makeToken(t, time.Now().Add(2*time.Hour))}, nil
	})

	store := memory.New()
	sess := NewSession(store)
	// Токен в пределах порога обновления.
	expiring := makeToken(t, time.Now().Add(5*time.Minute))
	seedSession(t, sess, expiring, "refresh-1")

	mgr, _ := newTestManager(sess, r, Options{CheckInterval: time.Hour})

	stop := mgr.Start(ctx)
	defer stop()

	mgr.Wake()

	require.Eventually(t, func() bool {
		token, _ := sess.AccessToken(ctx)
		return token != expiring
	}, 2*time.Second, 10*time.Millisecond)
}

func TestManager_Scheduler_FreshTokenNotRefreshed(t *testing.T) {
	t.Parallel()

	var calls int32
	r := refresherFunc(func(context.Context, string) (*models.TokenPair, error) {
		atomic.AddInt32(&calls, 1)
		return &models.TokenPair{AccessToken: "access-2"}, nil
	})

	sess := NewSession(memory.New())
	// До истечения далеко — обновление не требуется.
	seedSession(t, sess, makeToken(t, time.Now().Add(2*time.Hour)), "refresh-1")

	mgr, _ := newTestManager(sess, r, Options{CheckInterval: time.Hour})

	stop := mgr.Start(context.Background())
	defer stop()

	mgr.Wake()
	time.Sleep(100 * time.Millisecond)

	require.Zero(t, atomic.LoadInt32(&calls))
}
