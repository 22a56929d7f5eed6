package entities

import (
	"errors"
	"strings"
)

// KnowledgeEntry is an operator-authored question/answer pair used by the
// bot to answer future client queries. times_used is maintained server-side.
type KnowledgeEntry struct {
	ID          int    `json:"id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Keywords    string `json:"keywords"`
	IsActive    bool   `json:"is_active"`
	TimesUsed   int    `json:"times_used"`
	AddedByName string `json:"added_by_name"`
	CreatedAt   string `json:"created_at"`
}

// KnowledgePatch is a partial update for PUT /knowledge/{id}. Nil fields
// are left untouched server-side.
type KnowledgePatch struct {
	Question *string `json:"question,omitempty"`
	Answer   *string `json:"answer,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

var ErrEmptyKnowledgeFields = errors.New("question and answer must not be empty")

// ValidateKnowledgePair rejects empty question/answer before anything is
// sent to the server.
func ValidateKnowledgePair(question, answer string) error {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return ErrEmptyKnowledgeFields
	}
	return nil
}

// MatchesSearch does the case-insensitive substring filter the knowledge
// view applies locally over question and answer.
func (e *KnowledgeEntry) MatchesSearch(search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(e.Question), s) ||
		strings.Contains(strings.ToLower(e.Answer), s)
}
