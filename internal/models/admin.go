package models

import "github.com/google/uuid"

// AdminUser — пользователь в списке админки.
type AdminUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	CreatedAt int64     `json:"created_at"`
}

type SetUserActiveRequest struct {
	Active bool `json:"active"`
}

// AuditEntry — запись журнала аудита.
type AuditEntry struct {
	ID        uuid.UUID `json:"id"`
	ActorID   uuid.UUID `json:"actor_id"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Details   string    `json:"details,omitempty"`
	CreatedAt int64     `json:"created_at"`
}

// AuditQuery — фильтры выборки журнала аудита.
type AuditQuery struct {
	ActorID string `json:"actor_id,omitempty"`
	Action  string `json:"action,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

type UpsertExerciseRequest struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment,omitempty"`
	Description string `json:"description,omitempty"`
}

// BroadcastRequest — массовое уведомление всем пользователям.
type BroadcastRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type BroadcastResponse struct {
	Delivered int `json:"delivered"`
}
