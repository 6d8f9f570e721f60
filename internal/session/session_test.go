package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/douglas-germano/fitgen-sub000/internal/storage"
	"github.com/douglas-germano/fitgen-sub000/internal/storage/memory"
	"github.com/douglas-germano/fitgen-sub000/mocks"
)

func TestSession_SetTokens_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sess := NewSession(memory.New())

	require.NoError(t, sess.SetTokens(ctx, "access-1", "refresh-1"))

	token, err := sess.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "access-1", token)
	require.Equal(t, "refresh-1", sess.RefreshToken(ctx))
}

// Пустой refresh-токен при обновлении не затирает сохранённый:
// бэкенд мог не ротировать его.
func TestSession_SetTokens_KeepsRefreshWhenEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sess := NewSession(memory.New())

	require.NoError(t, sess.SetTokens(ctx, "access-1", "refresh-1"))
	require.NoError(t, sess.SetTokens(ctx, "access-2", ""))

	token, err := sess.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "access-2", token)
	require.Equal(t, "refresh-1", sess.RefreshToken(ctx))
}

func TestSession_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.New()
	sess := NewSession(store)

	require.NoError(t, sess.SetTokens(ctx, "access-1", "refresh-1"))
	require.NoError(t, sess.Clear(ctx))

	token, err := sess.AccessToken(ctx)
	require.NoError(t, err)
	require.Empty(t, token)
	require.Empty(t, sess.RefreshToken(ctx))

	_, err = store.Get(ctx, KeyAccessToken)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// Ошибки чтения хранилища деградируют до "не авторизован", а не ломают вызов.
func TestSession_AccessToken_ReadErrorDegradesToEmpty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Get(gomock.Any(), KeyAccessToken).Return("", errors.New("io error"))

	sess := NewSession(st)

	token, err := sess.AccessToken(context.Background())
	require.NoError(t, err)
	require.Empty(t, token)
}

// Ошибки записи пробрасываются вызывающему.
func TestSession_SetTokens_WriteErrorPropagated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Set(gomock.Any(), KeyAccessToken, "access-1").Return(errors.New("disk full"))

	sess := NewSession(st)

	err := sess.SetTokens(context.Background(), "access-1", "refresh-1")
	require.Error(t, err)
}

func TestSession_ExpiresIn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sess := NewSession(memory.New())

	// Нет токена.
	_, ok := sess.ExpiresIn(ctx)
	require.False(t, ok)

	// Нечитаемый токен.
	require.NoError(t, sess.SetTokens(ctx, "garbage", ""))
	_, ok = sess.ExpiresIn(ctx)
	require.False(t, ok)

	// Нормальный токен.
	require.NoError(t, sess.SetTokens(ctx, makeToken(t, time.Now().Add(time.Hour)), ""))
	left, ok := sess.ExpiresIn(ctx)
	require.True(t, ok)
	require.InDelta(t, time.Hour, left, float64(5*time.Second))
}
