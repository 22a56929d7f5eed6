package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project_opsDesk/internal/entities"
	"project_opsDesk/internal/usecases"
)

type recordingNotifier struct {
	alerts []int
	fail   bool
}

func (n *recordingNotifier) Alert(count int) error {
	n.alerts = append(n.alerts, count)
	if n.fail {
		return errors.New("notifier down")
	}
	return nil
}

// The alert fires only on a strict increase over the previous baseline, and
// the baseline always moves to the last observed value. [3,3,5,5,2,5] must
// alert at 0→3, 3→5 and 2→5 — a drop and a rise back to an old peak alerts
// again.
func TestWatcherAlertSequence(t *testing.T) {
	notifier := &recordingNotifier{}
	w := usecases.NewWatcher(&fakeBackend{}, notifier)

	for _, count := range []int{3, 3, 5, 5, 2, 5} {
		w.Observe(count)
	}

	assert.Equal(t, []int{3, 5, 5}, notifier.alerts)
	assert.Equal(t, 5, w.Count())
}

func TestWatcherFirstObservationAlerts(t *testing.T) {
	// The baseline starts at zero, so the very first non-zero count alerts
	notifier := &recordingNotifier{}
	w := usecases.NewWatcher(&fakeBackend{}, notifier)

	w.Observe(2)
	w.Observe(0)

	assert.Equal(t, []int{2}, notifier.alerts)
	assert.Equal(t, 0, w.Count())
}

func TestWatcherPollFetchesNeedsOperator(t *testing.T) {
	var gotStatus entities.Status
	backend := &fakeBackend{
		listConversationsFn: func(ctx context.Context, status entities.Status, search string) ([]entities.Conversation, error) {
			gotStatus = status
			return make([]entities.Conversation, 4), nil
		},
	}
	notifier := &recordingNotifier{}
	w := usecases.NewWatcher(backend, notifier)

	count, err := w.Poll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entities.StatusNeedsOperator, gotStatus)
	assert.Equal(t, 4, count)
	assert.Equal(t, []int{4}, notifier.alerts)
}

// A failed poll is reported but changes nothing: the baseline stays where
// the last successful poll left it, so no spurious alert fires when the
// same count comes back on the next tick.
func TestWatcherFailedPollKeepsBaseline(t *testing.T) {
	fail := false
	backend := &fakeBackend{
		listConversationsFn: func(ctx context.Context, status entities.Status, search string) ([]entities.Conversation, error) {
			if fail {
				return nil, errors.New("network down")
			}
			return make([]entities.Conversation, 3), nil
		},
	}
	notifier := &recordingNotifier{}
	w := usecases.NewWatcher(backend, notifier)

	_, err := w.Poll(context.Background())
	require.NoError(t, err)

	fail = true
	count, err := w.Poll(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 3, count, "last good count stays visible")

	fail = false
	_, err = w.Poll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{3}, notifier.alerts, "only the initial rise alerts")
}

// A broken notifier must not break the baseline bookkeeping.
func TestWatcherNotifierFailureIsNonFatal(t *testing.T) {
	notifier := &recordingNotifier{fail: true}
	w := usecases.NewWatcher(&fakeBackend{}, notifier)

	w.Observe(1)
	w.Observe(1)

	assert.Equal(t, []int{1}, notifier.alerts)
	assert.Equal(t, 1, w.Count())
}
