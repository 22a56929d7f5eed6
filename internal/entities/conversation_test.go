package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project_opsDesk/internal/entities"
)

func TestParseStatus(t *testing.T) {
	for _, s := range entities.AllStatuses {
		parsed, err := entities.ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	for _, raw := range []string{"", "archived", "CLOSED", "in progress", "deleted"} {
		_, err := entities.ParseStatus(raw)
		assert.Error(t, err, "status %q must be rejected", raw)
	}
}

func TestStatusLabelsAndColors(t *testing.T) {
	for _, s := range entities.AllStatuses {
		assert.NotEqual(t, string(s), s.Label(), "status %s needs a display label", s)
		assert.NotEqual(t, "0", s.Color(), "status %s needs a badge color", s)
	}
}

func TestTransitionExposure(t *testing.T) {
	cases := []struct {
		status      entities.Status
		takeover    bool
		returnToBot bool
		close       bool
		send        bool
	}{
		{entities.StatusInProgress, true, false, true, true},
		{entities.StatusBotCompleted, true, false, true, true},
		{entities.StatusNeedsOperator, true, false, true, true},
		{entities.StatusOperatorActive, false, true, true, true},
		{entities.StatusClosed, false, false, false, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.takeover, tc.status.CanTakeover(), "%s takeover", tc.status)
		assert.Equal(t, tc.returnToBot, tc.status.CanReturnToBot(), "%s return-to-bot", tc.status)
		assert.Equal(t, tc.close, tc.status.CanClose(), "%s close", tc.status)
		assert.Equal(t, tc.send, tc.status.CanSendMessage(), "%s send", tc.status)
	}
}

// A closed dialog must expose no mutating control at all.
func TestClosedExposesNothing(t *testing.T) {
	s := entities.StatusClosed
	assert.False(t, s.CanTakeover() || s.CanReturnToBot() || s.CanClose() || s.CanSendMessage())
}

func TestDisplayNameFallback(t *testing.T) {
	conv := &entities.Conversation{ID: 3, ClientID: 12}
	assert.Equal(t, "Client #12", conv.DisplayName())

	conv.Client = &entities.Client{Username: "aida_k"}
	assert.Equal(t, "@aida_k", conv.DisplayName())

	conv.Client.Name = "Aida"
	assert.Equal(t, "Aida", conv.DisplayName())
}
