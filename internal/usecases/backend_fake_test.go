package usecases_test

import (
	"context"
	"errors"

	"project_opsDesk/internal/entities"
)

// fakeBackend implements interfaces.Backend with overridable function
// fields; unset operations fail loudly so a test cannot silently depend on
// an endpoint it did not stub.
type fakeBackend struct {
	loginFn             func(ctx context.Context, email, password string) (string, error)
	meFn                func(ctx context.Context) (*entities.Operator, error)
	listConversationsFn func(ctx context.Context, status entities.Status, search string) ([]entities.Conversation, error)
	statsFn             func(ctx context.Context) (*entities.Stats, error)
	getConversationFn   func(ctx context.Context, id int) (*entities.Conversation, error)
	updateStatusFn      func(ctx context.Context, id int, status entities.Status) (*entities.Conversation, error)
	listMessagesFn      func(ctx context.Context, conversationID int) ([]entities.Message, error)
	sendMessageFn       func(ctx context.Context, conversationID int, text string) (*entities.Message, error)
	listKnowledgeFn     func(ctx context.Context) ([]entities.KnowledgeEntry, error)
	createKnowledgeFn   func(ctx context.Context, question, answer string) (*entities.KnowledgeEntry, error)
	updateKnowledgeFn   func(ctx context.Context, id int, patch entities.KnowledgePatch) (*entities.KnowledgeEntry, error)
	deleteKnowledgeFn   func(ctx context.Context, id int) error
}

var errNotStubbed = errors.New("backend operation not stubbed")

func (f *fakeBackend) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginFn == nil {
		return "", errNotStubbed
	}
	return f.loginFn(ctx, email, password)
}

func (f *fakeBackend) Me(ctx context.Context) (*entities.Operator, error) {
	if f.meFn == nil {
		return nil, errNotStubbed
	}
	return f.meFn(ctx)
}

func (f *fakeBackend) ListConversations(ctx context.Context, status entities.Status, search string) ([]entities.Conversation, error) {
	if f.listConversationsFn == nil {
		return nil, errNotStubbed
	}
	return f.listConversationsFn(ctx, status, search)
}

func (f *fakeBackend) Stats(ctx context.Context) (*entities.Stats, error) {
	if f.statsFn == nil {
		return nil, errNotStubbed
	}
	return f.statsFn(ctx)
}

func (f *fakeBackend) GetConversation(ctx context.Context, id int) (*entities.Conversation, error) {
	if f.getConversationFn == nil {
		return nil, errNotStubbed
	}
	return f.getConversationFn(ctx, id)
}

func (f *fakeBackend) UpdateStatus(ctx context.Context, id int, status entities.Status) (*entities.Conversation, error) {
	if f.updateStatusFn == nil {
		return nil, errNotStubbed
	}
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeBackend) ListMessages(ctx context.Context, conversationID int) ([]entities.Message, error) {
	if f.listMessagesFn == nil {
		return nil, errNotStubbed
	}
	return f.listMessagesFn(ctx, conversationID)
}

func (f *fakeBackend) SendMessage(ctx context.Context, conversationID int, text string) (*entities.Message, error) {
	if f.sendMessageFn == nil {
		return nil, errNotStubbed
	}
	return f.sendMessageFn(ctx, conversationID, text)
}

func (f *fakeBackend) ListKnowledge(ctx context.Context) ([]entities.KnowledgeEntry, error) {
	if f.listKnowledgeFn == nil {
		return nil, errNotStubbed
	}
	return f.listKnowledgeFn(ctx)
}

func (f *fakeBackend) CreateKnowledge(ctx context.Context, question, answer string) (*entities.KnowledgeEntry, error) {
	if f.createKnowledgeFn == nil {
		return nil, errNotStubbed
	}
	return f.createKnowledgeFn(ctx, question, answer)
}

func (f *fakeBackend) UpdateKnowledge(ctx context.Context, id int, patch entities.KnowledgePatch) (*entities.KnowledgeEntry, error) {
	if f.updateKnowledgeFn == nil {
		return nil, errNotStubbed
	}
	return f.updateKnowledgeFn(ctx, id, patch)
}

func (f *fakeBackend) DeleteKnowledge(ctx context.Context, id int) error {
	if f.deleteKnowledgeFn == nil {
		return errNotStubbed
	}
	return f.deleteKnowledgeFn(ctx, id)
}
