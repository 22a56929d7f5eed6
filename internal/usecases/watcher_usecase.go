package usecases

import (
	"context"
	"fmt"
	"sync"

	"project_opsDesk/internal/entities"
	"project_opsDesk/internal/interfaces"
)

// Watcher is the page-independent background poll that counts dialogs
// waiting for an operator and raises an alert when the count rises.
type Watcher struct {
	backend   interfaces.Backend
	notifiers []interfaces.Notifier

	mu        sync.Mutex
	prevCount int // baseline from the last successful poll
	lastCount int // last observed count, for display
}

func NewWatcher(backend interfaces.Backend, notifiers ...interfaces.Notifier) *Watcher {
	return &Watcher{
		backend:   backend,
		notifiers: notifiers,
	}
}

// Poll fetches the needs_operator collection once. A failed fetch is
// reported to the caller but changes nothing: the baseline stays at the
// last successful observation and the next tick simply retries.
func (w *Watcher) Poll(ctx context.Context) (int, error) {
	conversations, err := w.backend.ListConversations(ctx, entities.StatusNeedsOperator, "")
	if err != nil {
		return w.Count(), err
	}
	return w.Observe(len(conversations)), nil
}

// Observe applies one successfully observed count. The alert fires exactly
// once per tick where the count strictly exceeds the previous baseline; the
// baseline then moves to the observed value either way, so a drop followed
// by a rise back to an old peak alerts again.
func (w *Watcher) Observe(count int) int {
	w.mu.Lock()
	alert := count > w.prevCount
	w.prevCount = count
	w.lastCount = count
	w.mu.Unlock()

	if alert {
		for _, n := range w.notifiers {
			if err := n.Alert(count); err != nil {
				fmt.Printf("[WATCHER] alert failed: %v\n", err)
			}
		}
	}
	return count
}

// Count returns the last observed needs_operator count.
func (w *Watcher) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastCount
}
