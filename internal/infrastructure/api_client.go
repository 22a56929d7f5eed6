package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"project_opsDesk/internal/entities"
	"project_opsDesk/internal/interfaces"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIClient is the single outbound gateway to the operator backend. It
// attaches the stored bearer token to every request and funnels every 401
// into session teardown, no matter which caller hit it (background pollers
// included).
type APIClient struct {
	baseURL string
	http    *http.Client
	tokens  interfaces.TokenStore

	// OnUnauthorized fires after the token store has been cleared on a 401.
	// The console uses it to force navigation back to the login screen.
	OnUnauthorized func()
}

func NewAPIClient(baseURL string, tokens interfaces.TokenStore) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

// do issues one request and decodes the JSON response into out (when out is
// non-nil). 401 handling happens here so every endpoint gets it for free.
func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := c.tokens.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Global session teardown, but only when a credential was actually
		// attached: a 401 on a bare request (wrong login password) is a plain
		// rejection, not an expired session. The store is cleared before the
		// hook runs so the next guarded render already sees no credential.
		if token != "" {
			c.tokens.Clear()
			if c.OnUnauthorized != nil {
				c.OnUnauthorized()
			}
		}
		return ErrUnauthorized
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %s", method, path, serverDetail(resp))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response of %s %s: %w", method, path, err)
		}
	}
	return nil
}

// serverDetail pulls the backend's {"detail": "..."} message when present.
func serverDetail(resp *http.Response) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(data, &payload) == nil && payload.Detail != "" {
		return fmt.Sprintf("%s (%s)", resp.Status, payload.Detail)
	}
	return resp.Status
}

// --- Auth ---

func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	// Login goes out without a stored token; a 401 here means wrong
	// credentials and never triggers session teardown.
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *APIClient) Me(ctx context.Context) (*entities.Operator, error) {
	var op entities.Operator
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// --- Conversations ---

func (c *APIClient) ListConversations(ctx context.Context, status entities.Status, search string) ([]entities.Conversation, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	if search != "" {
		query.Set("search", search)
	}
	var out []entities.Conversation
	if err := c.do(ctx, http.MethodGet, "/conversations/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) Stats(ctx context.Context) (*entities.Stats, error) {
	var stats entities.Stats
	if err := c.do(ctx, http.MethodGet, "/conversations/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *APIClient) GetConversation(ctx context.Context, id int) (*entities.Conversation, error) {
	var conv entities.Conversation
	if err := c.do(ctx, http.MethodGet, "/conversations/"+strconv.Itoa(id), nil, nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (c *APIClient) UpdateStatus(ctx context.Context, id int, status entities.Status) (*entities.Conversation, error) {
	body := map[string]entities.Status{"status": status}
	var conv entities.Conversation
	if err := c.do(ctx, http.MethodPatch, "/conversations/"+strconv.Itoa(id), nil, body, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// --- Messages ---

func (c *APIClient) ListMessages(ctx context.Context, conversationID int) ([]entities.Message, error) {
	var out []entities.Message
	path := fmt.Sprintf("/conversations/%d/messages/", conversationID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) SendMessage(ctx context.Context, conversationID int, text string) (*entities.Message, error) {
	body := map[string]string{"text": text}
	var msg entities.Message
	path := fmt.Sprintf("/conversations/%d/messages/", conversationID)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// --- Knowledge base ---

func (c *APIClient) ListKnowledge(ctx context.Context) ([]entities.KnowledgeEntry, error) {
	var out []entities.KnowledgeEntry
	if err := c.do(ctx, http.MethodGet, "/knowledge", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) CreateKnowledge(ctx context.Context, question, answer string) (*entities.KnowledgeEntry, error) {
	body := map[string]string{"question": question, "answer": answer}
	var entry entities.KnowledgeEntry
	if err := c.do(ctx, http.MethodPost, "/knowledge", nil, body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *APIClient) UpdateKnowledge(ctx context.Context, id int, patch entities.KnowledgePatch) (*entities.KnowledgeEntry, error) {
	var entry entities.KnowledgeEntry
	if err := c.do(ctx, http.MethodPut, "/knowledge/"+strconv.Itoa(id), nil, patch, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *APIClient) DeleteKnowledge(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/knowledge/"+strconv.Itoa(id), nil, nil, nil)
}
