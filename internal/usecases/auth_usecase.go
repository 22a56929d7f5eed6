package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"project_opsDesk/internal/entities"
	"project_opsDesk/internal/infrastructure"
	"project_opsDesk/internal/interfaces"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")
)

// AuthUsecase owns the credential lifecycle: set on login, read everywhere,
// cleared on logout or on any authorization failure.
type AuthUsecase struct {
	backend interfaces.Backend
	tokens  interfaces.TokenStore
}

func NewAuthUsecase(backend interfaces.Backend, tokens interfaces.TokenStore) *AuthUsecase {
	return &AuthUsecase{
		backend: backend,
		tokens:  tokens,
	}
}

// Login exchanges credentials for a token and stores it. A rejection leaves
// the (empty) session untouched — the error is for inline display only.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) error {
	token, err := uc.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := uc.tokens.Save(token); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

func (uc *AuthUsecase) Logout() error {
	return uc.tokens.Clear()
}

// HasSession reports whether a credential is currently stored. It says
// nothing about validity — that is what Guard is for.
func (uc *AuthUsecase) HasSession() bool {
	return uc.tokens.Token() != ""
}

// Guard gates entry into operator-only views. No credential denies without
// a network call; a locally-expired token is cleared and denied the same
// way; otherwise validity is confirmed with one identity check, and the
// credential is cleared on any failure.
func (uc *AuthUsecase) Guard(ctx context.Context) (*entities.Operator, error) {
	token := uc.tokens.Token()
	if token == "" {
		return nil, ErrNoSession
	}

	if exp := infrastructure.TokenExpiry(token); !exp.IsZero() && exp.Before(time.Now()) {
		uc.tokens.Clear()
		return nil, ErrSessionExpired
	}

	operator, err := uc.backend.Me(ctx)
	if err != nil {
		uc.tokens.Clear()
		return nil, err
	}
	return operator, nil
}
