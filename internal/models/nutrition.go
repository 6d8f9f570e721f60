package models

// Meal — запись о приёме пищи.
type Meal struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MealType    string  `json:"meal_type"` // breakfast | lunch | dinner | snack
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	Date        string  `json:"date"` // YYYY-MM-DD
	CreatedAt   int64   `json:"created_at"`
	AIEstimated bool    `json:"ai_estimated"`
}

type LogMealRequest struct {
	Name     string  `json:"name"`
	MealType string  `json:"meal_type"`
	Calories float64 `json:"calories,omitempty"`
	ProteinG float64 `json:"protein_g,omitempty"`
	CarbsG   float64 `json:"carbs_g,omitempty"`
	FatG     float64 `json:"fat_g,omitempty"`
	Date     string  `json:"date,omitempty"`
}

// EstimateMealRequest — запрос AI-оценки макронутриентов по описанию.
type EstimateMealRequest struct {
	Description string `json:"description"`
}

type MealEstimate struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// NutritionSummary — дневная сводка по питанию.
type NutritionSummary struct {
	Date         string  `json:"date"`
	Calories     float64 `json:"calories"`
	CaloriesGoal float64 `json:"calories_goal"`
	ProteinG     float64 `json:"protein_g"`
	CarbsG       float64 `json:"carbs_g"`
	FatG         float64 `json:"fat_g"`
	MealsLogged  int     `json:"meals_logged"`
}
