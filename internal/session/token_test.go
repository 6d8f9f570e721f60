package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// makeToken выпускает подписанный HS256-токен с заданным exp.
func makeToken(t *testing.T, exp time.Time) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
		"sub": "user-1",
	})

	signed, err := tok.SignedString([]byte("unit-secret"))
	require.NoError(t, err)
	return signed
}

// makeTokenNoExp — валидный JWT без claim exp.
func makeTokenNoExp(t *testing.T) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	signed, err := tok.SignedString([]byte("unit-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpiry_OK(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	got, ok := tokenExpiry(makeToken(t, exp))
	require.True(t, ok)
	require.WithinDuration(t, exp, got, time.Second)
}

func TestTokenExpiry_Malformed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not_a_jwt", "garbage"},
		{"two_segments", "aaaa.bbbb"},
		{"payload_not_base64", "aaaa.$$$$.cccc"},
		{"payload_not_json", "aaaa." + "bm90LWpzb24" + ".cccc"}, // "not-json"
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, ok := tokenExpiry(tc.token)
			require.False(t, ok)
		})
	}
}

func TestTokenExpiry_NoExpClaim(t *testing.T) {
	t.Parallel()

	_, ok := tokenExpiry(makeTokenNoExp(t))
	require.False(t, ok)
}

func TestShouldRefresh_Threshold(t *testing.T) {
	t.Parallel()

	now := time.Now()

	cases := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{"far_future", now.Add(2 * time.Hour), false},
		{"just_over_threshold", now.Add(RefreshBefore + time.Minute), false},
		{"within_threshold", now.Add(RefreshBefore - time.Minute), true},
		{"about_to_expire", now.Add(10 * time.Second), true},
		{"already_expired", now.Add(-time.Hour), true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, shouldRefresh(makeToken(t, tc.exp), now))
		})
	}
}

// Нечитаемый токен не считается требующим обновления — осознанно
// консервативное поведение (см. комментарий к shouldRefresh).
func TestShouldRefresh_MalformedToken(t *testing.T) {
	t.Parallel()

	require.False(t, shouldRefresh("garbage", time.Now()))
	require.False(t, shouldRefresh("", time.Now()))
}
