package interfaces

import (
	"context"

	"project_opsDesk/internal/entities"
)

// TokenStore holds the single bearer credential for the console process.
// Set on login, read on every outbound call, cleared on logout or on any
// 401 response.
type TokenStore interface {
	Token() string
	Save(token string) error
	Clear() error
}

// Backend is the remote operator API surface the console consumes.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*entities.Operator, error)

	ListConversations(ctx context.Context, status entities.Status, search string) ([]entities.Conversation, error)
	Stats(ctx context.Context) (*entities.Stats, error)
	GetConversation(ctx context.Context, id int) (*entities.Conversation, error)
	UpdateStatus(ctx context.Context, id int, status entities.Status) (*entities.Conversation, error)
	ListMessages(ctx context.Context, conversationID int) ([]entities.Message, error)
	SendMessage(ctx context.Context, conversationID int, text string) (*entities.Message, error)

	ListKnowledge(ctx context.Context) ([]entities.KnowledgeEntry, error)
	CreateKnowledge(ctx context.Context, question, answer string) (*entities.KnowledgeEntry, error)
	UpdateKnowledge(ctx context.Context, id int, patch entities.KnowledgePatch) (*entities.KnowledgeEntry, error)
	DeleteKnowledge(ctx context.Context, id int) error
}

// Notifier raises an alert when new conversations start waiting for an
// operator. Implementations must not block the watcher for long.
type Notifier interface {
	Alert(count int) error
}
