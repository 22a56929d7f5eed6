package console

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"project_opsDesk/internal/entities"
	"project_opsDesk/internal/infrastructure"
	"project_opsDesk/internal/usecases"
)

// ChatPollInterval is how often an open dialog re-fetches.
const ChatPollInterval = 5 * time.Second

// ChatView is one open dialog: the conversation plus its full message
// history, re-fetched every few seconds and unconditionally after every
// mutation. Local state is never updated optimistically — the server
// snapshot is the only source of truth.
type ChatView struct {
	convs  *usecases.ConversationUsecase
	out    io.Writer
	poller *infrastructure.Poller

	mu       sync.Mutex
	id       int
	snapshot *usecases.DetailSnapshot
}

func NewChatView(convs *usecases.ConversationUsecase, out io.Writer) *ChatView {
	return &ChatView{
		convs:  convs,
		out:    out,
		poller: infrastructure.NewPoller(),
	}
}

// Open switches the view to a dialog and does the initial load. On a
// failed initial load the caller navigates back to the list.
func (v *ChatView) Open(ctx context.Context, id int) error {
	v.mu.Lock()
	v.id = id
	v.snapshot = nil
	v.mu.Unlock()

	if err := v.refresh(ctx, true); err != nil {
		return fmt.Errorf("load dialog %d: %w", id, err)
	}
	v.poller.Start(ChatPollInterval, func() {
		v.refresh(ctx, false)
	})
	return nil
}

func (v *ChatView) Close() {
	v.poller.Stop()
}

// refresh fetches a snapshot for the id current at request time and drops
// the result if the operator has navigated to another dialog meanwhile. A
// late response must never mutate state belonging to a different dialog.
func (v *ChatView) refresh(ctx context.Context, render bool) error {
	v.mu.Lock()
	requestedID := v.id
	v.mu.Unlock()

	snap, err := v.convs.FetchDetail(ctx, requestedID)
	if err != nil {
		return err
	}
	if v.apply(requestedID, snap) && render {
		renderDetail(v.out, snap)
	}
	return nil
}

// apply installs a snapshot only when it belongs to the currently open
// dialog. Returns false for stale responses.
func (v *ChatView) apply(requestedID int, snap *usecases.DetailSnapshot) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if requestedID != v.id {
		return false
	}
	v.snapshot = snap
	return true
}

// Conversation returns the currently displayed conversation, or nil before
// the first load.
func (v *ChatView) Conversation() *entities.Conversation {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.snapshot == nil {
		return nil
	}
	return v.snapshot.Conversation
}

// Render prints the current snapshot again on demand.
func (v *ChatView) Render() {
	v.mu.Lock()
	snap := v.snapshot
	v.mu.Unlock()
	if snap != nil {
		renderDetail(v.out, snap)
	}
}

// Send posts an operator message and re-fetches. The send control is only
// offered while the dialog is open, but the usecase re-checks anyway.
func (v *ChatView) Send(ctx context.Context, text string) error {
	conv := v.Conversation()
	if conv == nil {
		return fmt.Errorf("dialog not loaded yet")
	}
	if err := v.convs.Send(ctx, conv, text); err != nil {
		return err
	}
	return v.refresh(ctx, true)
}

// Takeover, ReturnToBot and Close are the three operator transitions. Each
// one issues a single PATCH and then re-fetches; the UI never assumes the
// transition landed.

func (v *ChatView) Takeover(ctx context.Context) error {
	return v.transition(ctx, (*usecases.ConversationUsecase).Takeover)
}

func (v *ChatView) ReturnToBot(ctx context.Context) error {
	return v.transition(ctx, (*usecases.ConversationUsecase).ReturnToBot)
}

func (v *ChatView) CloseDialog(ctx context.Context) error {
	return v.transition(ctx, (*usecases.ConversationUsecase).Close)
}

func (v *ChatView) transition(ctx context.Context, action func(*usecases.ConversationUsecase, context.Context, *entities.Conversation) error) error {
	conv := v.Conversation()
	if conv == nil {
		return fmt.Errorf("dialog not loaded yet")
	}
	if err := action(v.convs, ctx, conv); err != nil {
		return err
	}
	return v.refresh(ctx, true)
}
