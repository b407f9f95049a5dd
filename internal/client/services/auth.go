package services

import (
	"context"
	"sync"

	"github.com/rmoreira/quizforge/internal/client/api"
	"github.com/rmoreira/quizforge/internal/client/auth"
	"github.com/rmoreira/quizforge/internal/client/models"
	"github.com/rmoreira/quizforge/internal/logging"
)

// AuthService drives the authentication lifecycle:
//
//	Anonymous --login/register success--> Authenticated (identity pending)
//	Authenticated (pending) --identity fetch success--> Authenticated (resolved)
//	any state --logout or 401--> Anonymous
//
// Token expiry is discovered reactively: there is no refresh flow, a 401 on
// any call logs the user out via the gateway's global handler.
type AuthService struct {
	client  api.Client
	authCtx *auth.Context
	log     logging.Logger

	mu      sync.Mutex
	loading bool
	lastErr string
}

func NewAuthService(client api.Client, authCtx *auth.Context, log logging.Logger) *AuthService {
	return &AuthService{client: client, authCtx: authCtx, log: log}
}

// Login exchanges credentials for a token, installs and persists it, then
// refreshes the identity. The identity refresh is awaited but its outcome
// does not affect the returned result; a refresh failure logs the user back
// out through the standard path.
func (s *AuthService) Login(ctx context.Context, email, password string) Ack {
	s.setLoading(true)
	defer s.setLoading(false)
	s.setErr("")

	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		msg := userMessage(err, "login failed")
		s.setErr(msg)
		s.log.Warn(ctx, "login failed", "email", email, "error", err)
		return failure[struct{}](msg)
	}

	if err := s.authCtx.SetToken(ctx, token); err != nil {
		msg := "could not store the credential"
		s.setErr(msg)
		s.log.Error(ctx, "failed to persist credential", "error", err)
		return failure[struct{}](msg)
	}

	s.FetchIdentity(ctx)
	return okAck()
}

// Register creates an account and, on success, immediately logs in with the
// same credentials.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) Ack {
	s.setLoading(true)
	s.setErr("")

	if err := s.client.Register(ctx, email, password, fullName); err != nil {
		s.setLoading(false)
		msg := userMessage(err, "registration failed")
		s.setErr(msg)
		s.log.Warn(ctx, "registration failed", "email", email, "error", err)
		return failure[struct{}](msg)
	}
	s.setLoading(false)

	return s.Login(ctx, email, password)
}

// FetchIdentity populates the identity for the installed credential. It is a
// no-op when anonymous; any failure — including a 401 the gateway has
// already handled — routes through Logout.
func (s *AuthService) FetchIdentity(ctx context.Context) {
	if !s.authCtx.IsAuthenticated() {
		return
	}

	identity, err := s.client.Me(ctx)
	if err != nil {
		s.log.Warn(ctx, "identity fetch failed, logging out", "error", err)
		s.Logout(ctx)
		return
	}
	s.authCtx.SetIdentity(identity)
}

// Logout clears the identity, the token, and the persisted credential.
// Safe to call when already logged out.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.authCtx.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear credential", "error", err)
	}
}

// IsAuthenticated reports whether a credential is installed.
func (s *AuthService) IsAuthenticated() bool {
	return s.authCtx.IsAuthenticated()
}

// Identity returns the resolved profile, or nil while anonymous or pending.
func (s *AuthService) Identity() *models.Identity {
	return s.authCtx.Identity()
}

// Err returns the last recorded authentication error message.
func (s *AuthService) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError dismisses stale error state.
func (s *AuthService) ClearError() {
	s.setErr("")
}

// Loading reports whether an auth operation is in flight.
func (s *AuthService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthService) setErr(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

func (s *AuthService) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}
