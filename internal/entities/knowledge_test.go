package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"project_opsDesk/internal/entities"
)

func TestValidateKnowledgePair(t *testing.T) {
	assert.NoError(t, entities.ValidateKnowledgePair("How much is a master class?", "From 1500."))

	assert.ErrorIs(t, entities.ValidateKnowledgePair("", "answer"), entities.ErrEmptyKnowledgeFields)
	assert.ErrorIs(t, entities.ValidateKnowledgePair("question", ""), entities.ErrEmptyKnowledgeFields)
	assert.ErrorIs(t, entities.ValidateKnowledgePair("   ", "\t\n"), entities.ErrEmptyKnowledgeFields)
}

func TestKnowledgeMatchesSearch(t *testing.T) {
	entry := &entities.KnowledgeEntry{Question: "Opening hours?", Answer: "We open at 10:00"}

	assert.True(t, entry.MatchesSearch(""))
	assert.True(t, entry.MatchesSearch("HOURS"))
	assert.True(t, entry.MatchesSearch("open at"))
	assert.False(t, entry.MatchesSearch("pottery"))
}
