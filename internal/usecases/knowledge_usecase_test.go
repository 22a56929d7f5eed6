package usecases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project_opsDesk/internal/entities"
	"project_opsDesk/internal/usecases"
)

func TestKnowledgeCreateValidatesBeforeRequest(t *testing.T) {
	created := 0
	backend := &fakeBackend{
		createKnowledgeFn: func(ctx context.Context, question, answer string) (*entities.KnowledgeEntry, error) {
			created++
			return &entities.KnowledgeEntry{ID: 1, Question: question, Answer: answer, IsActive: true}, nil
		},
	}
	uc := usecases.NewKnowledgeUsecase(backend)

	_, err := uc.Create(context.Background(), "  ", "answer")
	assert.ErrorIs(t, err, entities.ErrEmptyKnowledgeFields)
	assert.Zero(t, created, "invalid pairs never reach the server")

	entry, err := uc.Create(context.Background(), "Q", "A")
	require.NoError(t, err)
	assert.True(t, entry.IsActive)
	assert.Zero(t, entry.TimesUsed)
}

func TestKnowledgeListLocalSearch(t *testing.T) {
	backend := &fakeBackend{
		listKnowledgeFn: func(ctx context.Context) ([]entities.KnowledgeEntry, error) {
			return []entities.KnowledgeEntry{
				{ID: 1, Question: "Opening hours?", Answer: "From 10:00"},
				{ID: 2, Question: "Price of a master class", Answer: "From 1500"},
			}, nil
		},
	}
	uc := usecases.NewKnowledgeUsecase(backend)

	all, err := uc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := uc.List(context.Background(), "master")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].ID)
}

func TestKnowledgeTogglePatchesOnlyIsActive(t *testing.T) {
	var gotPatch entities.KnowledgePatch
	backend := &fakeBackend{
		updateKnowledgeFn: func(ctx context.Context, id int, patch entities.KnowledgePatch) (*entities.KnowledgeEntry, error) {
			gotPatch = patch
			return &entities.KnowledgeEntry{ID: id, IsActive: *patch.IsActive}, nil
		},
	}
	uc := usecases.NewKnowledgeUsecase(backend)

	entry := &entities.KnowledgeEntry{ID: 4, IsActive: true}
	updated, err := uc.Toggle(context.Background(), entry)
	require.NoError(t, err)

	assert.Nil(t, gotPatch.Question)
	assert.Nil(t, gotPatch.Answer)
	require.NotNil(t, gotPatch.IsActive)
	assert.False(t, *gotPatch.IsActive)
	assert.False(t, updated.IsActive)
}

func TestKnowledgeEditSendsBothFields(t *testing.T) {
	var gotPatch entities.KnowledgePatch
	backend := &fakeBackend{
		updateKnowledgeFn: func(ctx context.Context, id int, patch entities.KnowledgePatch) (*entities.KnowledgeEntry, error) {
			gotPatch = patch
			return &entities.KnowledgeEntry{ID: id}, nil
		},
	}
	uc := usecases.NewKnowledgeUsecase(backend)

	_, err := uc.Edit(context.Background(), 4, "new question", "new answer")
	require.NoError(t, err)
	require.NotNil(t, gotPatch.Question)
	require.NotNil(t, gotPatch.Answer)
	assert.Equal(t, "new question", *gotPatch.Question)
	assert.Equal(t, "new answer", *gotPatch.Answer)

	_, err = uc.Edit(context.Background(), 4, "", "answer")
	assert.ErrorIs(t, err, entities.ErrEmptyKnowledgeFields)
}
