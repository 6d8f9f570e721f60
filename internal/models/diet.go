package models

// GenerateDietRequest — параметры генерации плана питания (AI на бэкенде).
type GenerateDietRequest struct {
	Goal         string   `json:"goal"` // lose | maintain | gain
	CaloriesGoal float64  `json:"calories_goal,omitempty"`
	Exclusions   []string `json:"exclusions,omitempty"`
	MealsPerDay  int      `json:"meals_per_day,omitempty"`
}

// DietPlan — сгенерированный план питания.
type DietPlan struct {
	ID           string    `json:"id"`
	Goal         string    `json:"goal"`
	CaloriesGoal float64   `json:"calories_goal"`
	Days         []DietDay `json:"days"`
	CreatedAt    int64     `json:"created_at"`
}

type DietDay struct {
	Day   int        `json:"day"`
	Meals []DietMeal `json:"meals"`
}

type DietMeal struct {
	MealType string  `json:"meal_type"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}
