package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"project_opsDesk/internal/entities"
	"project_opsDesk/internal/interfaces"
)

var (
	ErrActionUnavailable = errors.New("action not available in current status")
	ErrEmptyMessage      = errors.New("message text must not be empty")
)

// ListSnapshot is one full server-side view of the conversation list plus
// the aggregate counters. Views replace their state with it wholesale.
type ListSnapshot struct {
	Conversations []entities.Conversation
	Stats         *entities.Stats
}

// DetailSnapshot is one full server-side view of a single conversation and
// its ordered message history.
type DetailSnapshot struct {
	Conversation *entities.Conversation
	Messages     []entities.Message
}

// ConversationUsecase is everything the list and chat views do against the
// backend. It never keeps conversation state of its own: every fetch is a
// fresh snapshot, every mutation is followed by a caller re-fetch.
type ConversationUsecase struct {
	backend interfaces.Backend

	// Coalesces filter/search-triggered refreshes so typing into the search
	// box cannot turn into a request storm. The regular interval poll does
	// not go through this limiter.
	refreshLimit *rate.Limiter
}

func NewConversationUsecase(backend interfaces.Backend) *ConversationUsecase {
	return &ConversationUsecase{
		backend:      backend,
		refreshLimit: rate.NewLimiter(rate.Limit(1), 2), // 1/sec, burst 2
	}
}

// AllowImmediateRefresh gates refreshes triggered by a filter or search
// change. When denied the caller just waits for the next interval tick.
func (uc *ConversationUsecase) AllowImmediateRefresh() bool {
	return uc.refreshLimit.Allow()
}

// FetchList loads the filtered conversation collection and the stats
// counters. filter may be empty (all statuses).
func (uc *ConversationUsecase) FetchList(ctx context.Context, filter entities.Status, search string) (*ListSnapshot, error) {
	if filter != "" && !filter.Valid() {
		return nil, fmt.Errorf("invalid status filter %q", filter)
	}

	conversations, err := uc.backend.ListConversations(ctx, filter, search)
	if err != nil {
		return nil, err
	}
	stats, err := uc.backend.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &ListSnapshot{Conversations: conversations, Stats: stats}, nil
}

// FetchDetail loads one conversation plus its full message history,
// ordered oldest-first by the server.
func (uc *ConversationUsecase) FetchDetail(ctx context.Context, id int) (*DetailSnapshot, error) {
	conversation, err := uc.backend.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	messages, err := uc.backend.ListMessages(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DetailSnapshot{Conversation: conversation, Messages: messages}, nil
}

// Takeover moves a dialog to operator_active. Blocked client-side when the
// status does not expose the control.
func (uc *ConversationUsecase) Takeover(ctx context.Context, conv *entities.Conversation) error {
	if !conv.Status.CanTakeover() {
		return ErrActionUnavailable
	}
	_, err := uc.backend.UpdateStatus(ctx, conv.ID, entities.StatusOperatorActive)
	return err
}

// ReturnToBot hands an operator_active dialog back to the bot.
func (uc *ConversationUsecase) ReturnToBot(ctx context.Context, conv *entities.Conversation) error {
	if !conv.Status.CanReturnToBot() {
		return ErrActionUnavailable
	}
	_, err := uc.backend.UpdateStatus(ctx, conv.ID, entities.StatusInProgress)
	return err
}

// Close marks a dialog closed. Closing an already-closed dialog is a no-op
// rather than an error: the transition is idempotent and two operators may
// race on it.
func (uc *ConversationUsecase) Close(ctx context.Context, conv *entities.Conversation) error {
	if !conv.Status.CanClose() {
		return nil
	}
	_, err := uc.backend.UpdateStatus(ctx, conv.ID, entities.StatusClosed)
	return err
}

// Send posts an operator message into the dialog. Empty text and closed
// dialogs are rejected before any round trip.
func (uc *ConversationUsecase) Send(ctx context.Context, conv *entities.Conversation, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	if !conv.Status.CanSendMessage() {
		return ErrActionUnavailable
	}
	_, err := uc.backend.SendMessage(ctx, conv.ID, text)
	return err
}
