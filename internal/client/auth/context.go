// Package auth owns the client's authentication state: the bearer credential
// and the identity derived from it. A single Context is constructed at
// startup and injected into the request gateway and the services; clearing
// the context is the logout operation.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rmoreira/quizforge/internal/client/credentials"
	"github.com/rmoreira/quizforge/internal/client/models"
)

// Context holds the credential and identity behind a mutex so the gateway
// (which reads the token on every request) and the services (which install
// and clear it) see a consistent view.
//
// Invariants:
//   - the token is replace-only: it is installed whole or cleared, never
//     partially updated;
//   - the identity never outlives the token: Clear drops both;
//   - the persisted copy tracks the in-memory one on every Set/Clear.
type Context struct {
	mu       sync.RWMutex
	token    string
	identity *models.Identity

	store credentials.Repository
}

// NewContext builds a Context backed by store, resuming any token persisted
// by a previous run.
func NewContext(ctx context.Context, store credentials.Repository) (*Context, error) {
	token, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored credential: %w", err)
	}
	return &Context{token: token, store: store}, nil
}

// Token returns the current bearer token, or "" when unauthenticated.
func (c *Context) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// IsAuthenticated reports whether a credential is installed.
func (c *Context) IsAuthenticated() bool {
	return c.Token() != ""
}

// SetToken persists token and installs it. On a persistence failure the
// in-memory state is left untouched so memory and disk cannot diverge.
func (c *Context) SetToken(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Save(ctx, token); err != nil {
		return err
	}
	c.token = token
	return nil
}

// Clear drops the identity, the token, and the persisted credential.
// It is idempotent and is the teardown of an authenticated session; the
// gateway also calls it when the backend answers 401.
func (c *Context) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.identity = nil
	c.token = ""
	if err := c.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to remove stored credential: %w", err)
	}
	return nil
}

// Identity returns a copy of the authenticated user's profile, or nil while
// it has not been fetched.
func (c *Context) Identity() *models.Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.identity == nil {
		return nil
	}
	ident := *c.identity
	return &ident
}

// SetIdentity installs the fetched profile.
func (c *Context) SetIdentity(identity *models.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = identity
}

// TokenExpiry reports when the current token expires, if it carries a
// readable exp claim. The claim is parsed without signature verification —
// it is informational only; expiry is enforced by the backend via 401.
func (c *Context) TokenExpiry() (time.Time, bool) {
	tok := c.Token()
	if tok == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
