package models

// Achievement — геймифицированное достижение и прогресс по нему.
type Achievement struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Target      int    `json:"target"`
	Earned      bool   `json:"earned"`
	EarnedAt    int64  `json:"earned_at,omitempty"` // Unix UTC
}
