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

// ListPollInterval is how often the conversation list re-fetches.
const ListPollInterval = 10 * time.Second

// ConversationsView is the dialog list: a filtered, searchable collection
// plus the stats counters, re-fetched on a fixed interval and immediately
// on any filter/search change. Every successful fetch replaces the whole
// snapshot; a failed background fetch is dropped and the previous snapshot
// stays on screen.
type ConversationsView struct {
	convs  *usecases.ConversationUsecase
	out    io.Writer
	poller *infrastructure.Poller

	mu       sync.Mutex
	snapshot *usecases.ListSnapshot
	filter   entities.Status
	search   string
}

func NewConversationsView(convs *usecases.ConversationUsecase, out io.Writer) *ConversationsView {
	return &ConversationsView{
		convs:  convs,
		out:    out,
		poller: infrastructure.NewPoller(),
	}
}

// Open does the initial load and starts the interval poll. The poll starts
// even when the initial load fails: this view is the default page, so the
// error is surfaced to the caller and the next tick retries.
func (v *ConversationsView) Open(ctx context.Context) error {
	err := v.refresh(ctx, true)
	v.poller.Start(ListPollInterval, func() {
		v.refresh(ctx, true)
	})
	if err != nil {
		return fmt.Errorf("load dialogs: %w", err)
	}
	return nil
}

func (v *ConversationsView) Close() {
	v.poller.Stop()
}

// refresh fetches one snapshot with the filter/search captured at request
// time and applies it only if they still match, so a slow response for an
// old filter never overwrites a newer view.
func (v *ConversationsView) refresh(ctx context.Context, render bool) error {
	v.mu.Lock()
	filter, search := v.filter, v.search
	v.mu.Unlock()

	snap, err := v.convs.FetchList(ctx, filter, search)
	if err != nil {
		// Keep the previous snapshot, next tick retries
		return err
	}

	v.mu.Lock()
	stale := filter != v.filter || search != v.search
	if !stale {
		v.snapshot = snap
	}
	v.mu.Unlock()

	if render && !stale {
		renderList(v.out, snap, filter, search)
	}
	return nil
}

// SetFilter changes the active status filter. An empty value means all
// statuses. The immediate re-fetch goes through the refresh limiter; when
// the limiter says no, the next interval tick picks the change up.
func (v *ConversationsView) SetFilter(ctx context.Context, filter entities.Status) error {
	if filter != "" && !filter.Valid() {
		return fmt.Errorf("unknown status %q", filter)
	}
	v.mu.Lock()
	v.filter = filter
	v.mu.Unlock()

	if v.convs.AllowImmediateRefresh() {
		v.refresh(ctx, true)
	}
	return nil
}

// SetSearch changes the client-name search text. Same refresh discipline
// as SetFilter.
func (v *ConversationsView) SetSearch(ctx context.Context, search string) {
	v.mu.Lock()
	v.search = search
	v.mu.Unlock()

	if v.convs.AllowImmediateRefresh() {
		v.refresh(ctx, true)
	}
}

// Refresh is the manual refresh button: fetch now, bypassing the limiter.
func (v *ConversationsView) Refresh(ctx context.Context) {
	if err := v.refresh(ctx, true); err != nil {
		fmt.Fprintf(v.out, "refresh failed: %v\n", err)
	}
}

// Render prints the current snapshot again on demand.
func (v *ConversationsView) Render() {
	v.mu.Lock()
	snap, filter, search := v.snapshot, v.filter, v.search
	v.mu.Unlock()
	if snap != nil {
		renderList(v.out, snap, filter, search)
	}
}

// Snapshot exposes the last applied snapshot.
func (v *ConversationsView) Snapshot() *usecases.ListSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}
