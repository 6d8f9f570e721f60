package models

type LogWaterRequest struct {
	AmountMl int    `json:"amount_ml"`
	Date     string `json:"date,omitempty"` // YYYY-MM-DD, по умолчанию сегодня
}

// HydrationDay — дневной итог по воде.
type HydrationDay struct {
	Date     string `json:"date"`
	TotalMl  int    `json:"total_ml"`
	GoalMl   int    `json:"goal_ml"`
	Achieved bool   `json:"achieved"`
}

type SetHydrationGoalRequest struct {
	GoalMl int `json:"goal_ml"`
}
