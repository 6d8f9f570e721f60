package models

// BodyMetric — замер тела на дату.
type BodyMetric struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	WeightKg   float64 `json:"weight_kg"`
	BodyFatPct float64 `json:"body_fat_pct,omitempty"`
	WaistCm    float64 `json:"waist_cm,omitempty"`
	ChestCm    float64 `json:"chest_cm,omitempty"`
	HipsCm     float64 `json:"hips_cm,omitempty"`
	CreatedAt  int64   `json:"created_at"`
}

type LogMetricRequest struct {
	Date       string  `json:"date,omitempty"`
	WeightKg   float64 `json:"weight_kg"`
	BodyFatPct float64 `json:"body_fat_pct,omitempty"`
	WaistCm    float64 `json:"waist_cm,omitempty"`
	ChestCm    float64 `json:"chest_cm,omitempty"`
	HipsCm     float64 `json:"hips_cm,omitempty"`
}
