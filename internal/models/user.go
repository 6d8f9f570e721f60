package models

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile — профиль текущего пользователя.
type Profile struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	IsAdmin   bool    `json:"is_admin"`
	HeightCm  int     `json:"height_cm,omitempty"`
	WeightKg  float64 `json:"weight_kg,omitempty"`
	BirthDate string  `json:"birth_date,omitempty"` // YYYY-MM-DD
	Goal      string  `json:"goal,omitempty"`       // lose | maintain | gain
	CreatedAt int64   `json:"created_at"`           // Unix UTC
}

type UpdateProfileRequest struct {
	Name     string  `json:"name,omitempty"`
	HeightCm int     `json:"height_cm,omitempty"`
	WeightKg float64 `json:"weight_kg,omitempty"`
	Goal     string  `json:"goal,omitempty"`
}
