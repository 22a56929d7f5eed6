package console

import (
	"context"
	"fmt"
	"io"

	"project_opsDesk/internal/entities"
	"project_opsDesk/internal/usecases"
)

// KnowledgeView manages the bot's question/answer pairs. No interval poll
// here — the list reloads after every change, matching how rarely this
// data moves.
type KnowledgeView struct {
	knowledge *usecases.KnowledgeUsecase
	out       io.Writer

	entries []entities.KnowledgeEntry
	search  string
}

func NewKnowledgeView(knowledge *usecases.KnowledgeUsecase, out io.Writer) *KnowledgeView {
	return &KnowledgeView{
		knowledge: knowledge,
		out:       out,
	}
}

func (v *KnowledgeView) Open(ctx context.Context) error {
	if err := v.reload(ctx); err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}
	return nil
}

func (v *KnowledgeView) reload(ctx context.Context) error {
	entries, err := v.knowledge.List(ctx, v.search)
	if err != nil {
		return err
	}
	v.entries = entries
	renderKnowledge(v.out, v.entries, v.search)
	return nil
}

func (v *KnowledgeView) SetSearch(ctx context.Context, search string) error {
	v.search = search
	return v.reload(ctx)
}

func (v *KnowledgeView) Add(ctx context.Context, question, answer string) error {
	if _, err := v.knowledge.Create(ctx, question, answer); err != nil {
		return err
	}
	return v.reload(ctx)
}

func (v *KnowledgeView) Edit(ctx context.Context, id int, question, answer string) error {
	if _, err := v.knowledge.Edit(ctx, id, question, answer); err != nil {
		return err
	}
	return v.reload(ctx)
}

func (v *KnowledgeView) Toggle(ctx context.Context, id int) error {
	entry := v.find(id)
	if entry == nil {
		return fmt.Errorf("no entry #%d", id)
	}
	if _, err := v.knowledge.Toggle(ctx, entry); err != nil {
		return err
	}
	return v.reload(ctx)
}

func (v *KnowledgeView) Delete(ctx context.Context, id int) error {
	if err := v.knowledge.Delete(ctx, id); err != nil {
		return err
	}
	return v.reload(ctx)
}

func (v *KnowledgeView) find(id int) *entities.KnowledgeEntry {
	for i := range v.entries {
		if v.entries[i].ID == id {
			return &v.entries[i]
		}
	}
	return nil
}
