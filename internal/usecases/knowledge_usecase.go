package usecases

import (
	"context"

	"project_opsDesk/internal/entities"
	"project_opsDesk/internal/interfaces"
)

// KnowledgeUsecase manages the question/answer pairs the bot draws on.
type KnowledgeUsecase struct {
	backend interfaces.Backend
}

func NewKnowledgeUsecase(backend interfaces.Backend) *KnowledgeUsecase {
	return &KnowledgeUsecase{backend: backend}
}

// List returns all entries, optionally narrowed by a local case-insensitive
// search over question and answer.
func (uc *KnowledgeUsecase) List(ctx context.Context, search string) ([]entities.KnowledgeEntry, error) {
	entries, err := uc.backend.ListKnowledge(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return entries, nil
	}
	filtered := make([]entities.KnowledgeEntry, 0, len(entries))
	for _, e := range entries {
		if e.MatchesSearch(search) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// Create validates the pair client-side before anything hits the wire.
func (uc *KnowledgeUsecase) Create(ctx context.Context, question, answer string) (*entities.KnowledgeEntry, error) {
	if err := entities.ValidateKnowledgePair(question, answer); err != nil {
		return nil, err
	}
	return uc.backend.CreateKnowledge(ctx, question, answer)
}

// Edit replaces question and answer of an existing entry.
func (uc *KnowledgeUsecase) Edit(ctx context.Context, id int, question, answer string) (*entities.KnowledgeEntry, error) {
	if err := entities.ValidateKnowledgePair(question, answer); err != nil {
		return nil, err
	}
	patch := entities.KnowledgePatch{Question: &question, Answer: &answer}
	return uc.backend.UpdateKnowledge(ctx, id, patch)
}

// Toggle flips is_active. Inactive entries are kept for audit but excluded
// from bot use.
func (uc *KnowledgeUsecase) Toggle(ctx context.Context, entry *entities.KnowledgeEntry) (*entities.KnowledgeEntry, error) {
	active := !entry.IsActive
	patch := entities.KnowledgePatch{IsActive: &active}
	return uc.backend.UpdateKnowledge(ctx, entry.ID, patch)
}

func (uc *KnowledgeUsecase) Delete(ctx context.Context, id int) error {
	return uc.backend.DeleteKnowledge(ctx, id)
}
