package models

// Exercise — упражнение из каталога.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment,omitempty"`
	Description string `json:"description,omitempty"`
}

// WorkoutSet — подход внутри выполненного упражнения.
type WorkoutSet struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg,omitempty"`
}

// WorkoutExercise — упражнение в рамках тренировки.
type WorkoutExercise struct {
	ExerciseID string       `json:"exercise_id"`
	Name       string       `json:"name,omitempty"`
	Sets       []WorkoutSet `json:"sets"`
}

// Workout — завершённая тренировка.
type Workout struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Date        string            `json:"date"` // YYYY-MM-DD
	DurationMin int               `json:"duration_min"`
	Exercises   []WorkoutExercise `json:"exercises"`
	CreatedAt   int64             `json:"created_at"`
}

type LogWorkoutRequest struct {
	Name        string            `json:"name"`
	Date        string            `json:"date,omitempty"`
	DurationMin int               `json:"duration_min,omitempty"`
	Exercises   []WorkoutExercise `json:"exercises"`
}
