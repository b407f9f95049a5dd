// Package credentials persists the single bearer token the client owns.
// The token lives in a local SQLite database under a fixed key; absence
// means the user is not authenticated.
package credentials

import "context"

// Repository is the durable store for the access token.
//
// Contract:
//   - Load returns "" (no error) when no token is stored.
//   - Save replaces any previously stored token.
//   - Delete is idempotent.
type Repository interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}
