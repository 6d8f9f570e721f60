// models описывает входные/выходные структуры REST-контракта FitGen API.
package models

// TokenPair — пара токенов, выдаваемая при аутентификации/обновлении.
//
// AccessToken — короткоживущий JWT для авторизации запросов;
// RefreshToken — долгоживущий секрет для обновления пары. При обновлении
// бэкенд может не ротировать refresh-токен — тогда поле пустое.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
