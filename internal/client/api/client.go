// Package api is the request gateway: the single component through which
// every backend call passes. It attaches the bearer credential to outgoing
// requests, translates failures into a uniform error shape, and on a 401
// uninstalls the credential before re-raising the failure.
package api

import (
	"context"
	"io"

	"github.com/rmoreira/quizforge/internal/client/models"
)

// Client defines the backend operations the services are built on.
//
// All methods honor context cancellation. Errors are either *APIError
// (structured backend failure), or wrap ErrUnauthorized / ErrUnavailable.
type Client interface {
	// Login exchanges form credentials for a bearer token.
	Login(ctx context.Context, username, password string) (string, error)
	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, email, password, fullName string) error
	// Me fetches the authenticated user's profile.
	Me(ctx context.Context) (*models.Identity, error)

	// ListSessions returns the user's generation sessions.
	ListSessions(ctx context.Context) ([]models.Session, error)
	// UploadFile submits a source document and returns the created session.
	UploadFile(ctx context.Context, filename string, r io.Reader) (*models.Session, error)
	// GenerateQuestions runs generation for a session. Long-latency,
	// single-shot: no partial results.
	GenerateQuestions(ctx context.Context, sessionID models.ID, params models.GenerationParams) (*models.GenerationResult, error)
	// FetchQuestions returns the backend's canonical question set for a session.
	FetchQuestions(ctx context.Context, sessionID models.ID) ([]models.Question, error)

	// UpdateQuestion applies a partial update and returns the new state.
	UpdateQuestion(ctx context.Context, id models.ID, patch models.QuestionPatch) (*models.Question, error)
	// DeleteQuestion removes a question.
	DeleteQuestion(ctx context.Context, id models.ID) error
	// RegenerateQuestion asks the backend for a fresh instance of a question.
	RegenerateQuestion(ctx context.Context, id models.ID) (*models.Question, error)

	// ExportSession renders a session's questions into an artifact and
	// returns the raw bytes.
	ExportSession(ctx context.Context, sessionID models.ID, opts models.ExportOptions) ([]byte, error)

	// Close releases underlying transport resources.
	Close() error
}

// CredentialSource provides the bearer token attached to outbound requests
// and is told to drop it when the backend rejects it. *auth.Context satisfies
// this interface.
type CredentialSource interface {
	Token() string
	Clear(ctx context.Context) error
}
