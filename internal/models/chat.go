package models

// ChatMessage — сообщение в диалоге с AI-тренером.
type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"` // user | assistant
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

type SendChatRequest struct {
	Content string `json:"content"`
}
