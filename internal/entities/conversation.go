package entities

import (
	"fmt"
	"time"
)

// Status is the conversation lifecycle state. Closed set — the API never
// returns anything outside these five values, and we never send one.
type Status string

const (
	StatusInProgress     Status = "in_progress"     // Bot is handling the dialog
	StatusBotCompleted   Status = "bot_completed"   // Bot finished on its own
	StatusNeedsOperator  Status = "needs_operator"  // Escalated, waiting for an operator
	StatusOperatorActive Status = "operator_active" // Operator took over
	StatusClosed         Status = "closed"          // Terminal
)

// AllStatuses in display order (matches the list view filter row).
var AllStatuses = []Status{
	StatusNeedsOperator,
	StatusInProgress,
	StatusBotCompleted,
	StatusOperatorActive,
	StatusClosed,
}

// ParseStatus validates a raw status value against the closed set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusInProgress, StatusBotCompleted, StatusNeedsOperator, StatusOperatorActive, StatusClosed:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown conversation status %q", s)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Label returns the operator-facing name for a status.
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "In progress"
	case StatusBotCompleted:
		return "Bot handled"
	case StatusNeedsOperator:
		return "Needs operator"
	case StatusOperatorActive:
		return "Operator active"
	case StatusClosed:
		return "Closed"
	}
	return string(s)
}

// Color returns the ANSI color code used for the status badge.
func (s Status) Color() string {
	switch s {
	case StatusInProgress:
		return "34" // blue
	case StatusBotCompleted:
		return "32" // green
	case StatusNeedsOperator:
		return "31" // red
	case StatusOperatorActive:
		return "33" // yellow
	case StatusClosed:
		return "90" // gray
	}
	return "0"
}

// Operator-issuable transitions are exactly three: takeover, return-to-bot,
// close. The predicates below are the single source of truth for which
// controls a view may expose for a given status.

// CanTakeover reports whether the takeover action (-> operator_active) is
// available. Hidden when the dialog is closed or already taken over.
func (s Status) CanTakeover() bool {
	return s != StatusClosed && s != StatusOperatorActive
}

// CanReturnToBot reports whether the return-to-bot action (-> in_progress)
// is available. Only from operator_active.
func (s Status) CanReturnToBot() bool {
	return s == StatusOperatorActive
}

// CanClose reports whether the close action is available. Close is terminal.
func (s Status) CanClose() bool {
	return s != StatusClosed
}

// CanSendMessage reports whether the operator may write into the dialog.
func (s Status) CanSendMessage() bool {
	return s != StatusClosed
}

// Category classifies a conversation. Informational only, no transition rules.
type Category string

const (
	CategoryMasterClass Category = "master_class"
	CategoryHotel       Category = "hotel"
	CategoryCustomOrder Category = "custom_order"
	CategoryGeneral     Category = "general"
)

func (c Category) Label() string {
	switch c {
	case CategoryMasterClass:
		return "Master class"
	case CategoryHotel:
		return "Hotel"
	case CategoryCustomOrder:
		return "Custom order"
	case CategoryGeneral:
		return "General"
	}
	return string(c)
}

// Client is the customer on the other side of a conversation. Read-only
// from the console's perspective.
type Client struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Username      string    `json:"username"`
	Channel       string    `json:"channel"` // "telegram" or "whatsapp"
	ChannelUserID string    `json:"channel_user_id"`
	Language      string    `json:"language"`
	CreatedAt     time.Time `json:"created_at"`
}

// Conversation is one dialog between a client and the bot/operator.
type Conversation struct {
	ID                 int       `json:"id"`
	ClientID           int       `json:"client_id"`
	Status             Status    `json:"status"`
	Category           Category  `json:"category"`
	AssignedOperatorID int       `json:"assigned_operator_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Client             *Client   `json:"client"`
}

// DisplayName resolves what to show for the counterpart: name, then
// username, then a numeric fallback.
func (c *Conversation) DisplayName() string {
	if c.Client != nil {
		if c.Client.Name != "" {
			return c.Client.Name
		}
		if c.Client.Username != "" {
			return "@" + c.Client.Username
		}
	}
	return fmt.Sprintf("Client #%d", c.ClientID)
}
