package redis

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/douglas-germano/fitgen-sub000/internal/storage"
)

// Интеграционные тесты: требуют живой Redis.
// Запуск: TEST_REDIS_URL=redis://localhost:6379/15 go test ./internal/storage/redis/...
func newTestStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}

	st, err := New(context.Background(), url)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = st.Clear(context.Background())
		_ = st.Close()
	})

	return st
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Set(ctx, "token", "abc"))

	v, err := st.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, "abc", v)

	require.NoError(t, st.Delete(ctx, "token"))

	_, err = st.Get(ctx, "token")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// Clear не трогает чужие ключи без префикса.
func TestStore_Clear_PrefixOnly(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Set(ctx, "token", "abc"))
	require.NoError(t, st.rdb.Set(ctx, "unrelated_key", "keep-me", 0).Err())
	defer st.rdb.Del(ctx, "unrelated_key")

	require.NoError(t, st.Clear(ctx))

	_, err := st.Get(ctx, "token")
	require.ErrorIs(t, err, storage.ErrNotFound)

	v, err := st.rdb.Get(ctx, "unrelated_key").Result()
	require.NoError(t, err)
	require.Equal(t, "keep-me", v)
}

func TestNew_BadURL(t *testing.T) {
	_, err := New(context.Background(), "not-a-redis-url")
	require.Error(t, err)
}
