package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RefreshBefore — порог до истечения access-токена, после которого
// токен пора обновлять.
const RefreshBefore = 30 * time.Minute

// tokenExpiry достаёт exp из payload access-токена без проверки подписи
// (подпись проверяет бэкенд; клиенту нужен только срок годности).
//
// Любой битый вход — не три сегмента, не-base64url, не-JSON payload,
// отсутствующий exp — даёт ok=false; функция никогда не паникует.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// shouldRefresh — true, если до истечения токена меньше RefreshBefore
// (в том числе если токен уже истёк).
//
// Нечитаемый токен обновления не требует: это осознанно консервативное
// поведение — мусорный токен не должен порождать шторм refresh-запросов.
// Первый же запрос с таким токеном вернёт 401, и сессия завершится
// штатным путём.
func shouldRefresh(token string, now time.Time) bool {
	exp, ok := tokenExpiry(token)
	if !ok {
		return false
	}

	return exp.Sub(now) < RefreshBefore
}
