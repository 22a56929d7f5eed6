package entities

import "time"

// Sender identifies who wrote a message. Fixed closed set, never
// reassigned after creation.
type Sender string

const (
	SenderClient   Sender = "client"
	SenderBot      Sender = "bot"
	SenderOperator Sender = "operator"
)

func (s Sender) Label() string {
	switch s {
	case SenderClient:
		return "Client"
	case SenderBot:
		return "Bot"
	case SenderOperator:
		return "Operator"
	}
	return string(s)
}

// Message is one entry in a conversation's append-only history.
type Message struct {
	ID             int       `json:"id"`
	ConversationID int       `json:"conversation_id"`
	Sender         Sender    `json:"sender"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}
