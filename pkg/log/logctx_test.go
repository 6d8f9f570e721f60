package log

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrom_EmptyContext_ReturnsDefault(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.Default(), From(context.Background()))
}

func TestIntoFrom_RoundTrip(t *testing.T) {
	t.Parallel()

	l := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := Into(context.Background(), l)

	require.Same(t, l, From(ctx))
}

func TestFrom_NilLogger_ReturnsDefault(t *testing.T) {
	t.Parallel()

	ctx := Into(context.Background(), nil)
	require.Equal(t, slog.Default(), From(ctx))
}
