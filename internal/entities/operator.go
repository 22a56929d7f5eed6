package entities

import "time"

// Operator is the logged-in manager as reported by /auth/me.
type Operator struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsAdmin    bool      `json:"is_admin"`
	TelegramID string    `json:"telegram_id"` // For Telegram notifications
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// StatusCounts is one bucket of the /conversations/stats response.
type StatusCounts struct {
	Total          int `json:"total"`
	InProgress     int `json:"in_progress"`
	BotCompleted   int `json:"bot_completed"`
	NeedsOperator  int `json:"needs_operator"`
	OperatorActive int `json:"operator_active"`
	Closed         int `json:"closed"`
}

// Stats is the aggregate dashboard counters: today's numbers and all-time.
type Stats struct {
	Today StatusCounts `json:"today"`
	Total StatusCounts `json:"total"`
}
