package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/rmoreira/quizforge/internal/client/api"
	"github.com/rmoreira/quizforge/internal/client/models"
	"github.com/rmoreira/quizforge/internal/logging"
)

// SessionService is the controller for sessions and their questions. It owns
// the session list, the active session, and the active question collection;
// the collection always represents exactly one session's questions.
//
// Concurrency: every operation and every state mutation runs under one
// mutex, so a generate and a per-question edit against the same session
// cannot interleave their replace-the-collection and patch-one-element
// effects; whichever is called second waits. Accessors return copies — the
// service keeps the only mutable collection.
type SessionService struct {
	client    api.Client
	log       logging.Logger
	exportDir string

	// loading, generating and progress are read by the UI while an
	// operation still holds mu, so they live outside the lock.
	loading    atomic.Bool
	generating atomic.Bool
	progress   atomic.Int32

	mu        sync.Mutex
	sessions  []models.Session
	current   *models.Session
	questions []models.Question
	lastErr   string
}

func NewSessionService(client api.Client, exportDir string, log logging.Logger) *SessionService {
	return &SessionService{client: client, exportDir: exportDir, log: log}
}

// FetchSessions loads the authenticated user's sessions. On failure the list
// is emptied and the error recorded; the failure is not raised.
func (s *SessionService) FetchSessions(ctx context.Context) Result[[]models.Session] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.Store(true)
	defer s.loading.Store(false)

	sessions, err := s.client.ListSessions(ctx)
	if err != nil {
		s.lastErr = userMessage(err, "could not load sessions")
		s.sessions = nil
		s.log.Warn(ctx, "session list fetch failed", "error", err)
		return failure[[]models.Session](s.lastErr)
	}

	s.sessions = sessions
	return success(copySessions(sessions))
}

// UploadFile submits a source document and installs the returned session as
// the active one. This is the only operation that creates a session.
func (s *SessionService) UploadFile(ctx context.Context, filename string, r io.Reader) Result[models.Session] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.Store(true)
	defer s.loading.Store(false)
	s.lastErr = ""

	session, err := s.client.UploadFile(ctx, filename, r)
	if err != nil {
		s.lastErr = userMessage(err, "upload failed")
		s.log.Warn(ctx, "upload failed", "filename", filename, "error", err)
		return failure[models.Session](s.lastErr)
	}

	s.current = session
	s.log.Info(ctx, "upload complete", "session", session.ID, "filename", filename)
	return success(*session)
}

// GenerateQuestions runs generation for a session. On success the question
// collection is replaced wholesale with the response's set, the active
// session's counters and metadata are refreshed from the same response, and
// progress reaches 100. On failure the prior collection stays untouched.
func (s *SessionService) GenerateQuestions(ctx context.Context, sessionID models.ID, params models.GenerationParams) Result[[]models.Question] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating.Store(true)
	defer s.generating.Store(false)
	s.progress.Store(0)
	s.lastErr = ""

	result, err := s.client.GenerateQuestions(ctx, sessionID, params)
	if err != nil {
		s.lastErr = userMessage(err, "question generation failed")
		s.log.Warn(ctx, "generation failed", "session", sessionID, "error", err)
		return failure[[]models.Question](s.lastErr)
	}

	s.questions = result.Questions
	if result.SessionID != "" {
		s.current = &models.Session{
			ID:                 result.SessionID,
			QuestionsGenerated: result.QuestionsGenerated,
			Metadata:           result.Metadata,
		}
	}
	s.progress.Store(100)

	s.log.Info(ctx, "generation complete", "session", sessionID, "questions", len(result.Questions))
	return success(copyQuestions(s.questions))
}

// FetchQuestions replaces the active collection with the backend's canonical
// state for the given session.
func (s *SessionService) FetchQuestions(ctx context.Context, sessionID models.ID) Result[[]models.Question] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading.Store(true)
	defer s.loading.Store(false)

	questions, err := s.client.FetchQuestions(ctx, sessionID)
	if err != nil {
		s.lastErr = userMessage(err, "could not load questions")
		s.log.Warn(ctx, "question fetch failed", "session", sessionID, "error", err)
		return failure[[]models.Question](s.lastErr)
	}

	s.questions = questions
	return success(copyQuestions(questions))
}

// UpdateQuestion sends a partial update. On success the confirmed server
// state replaces the matching element; when the identifier is no longer in
// the collection the local patch is silently skipped.
func (s *SessionService) UpdateQuestion(ctx context.Context, id models.ID, patch models.QuestionPatch) Result[models.Question] {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, err := s.client.UpdateQuestion(ctx, id, patch)
	if err != nil {
		s.lastErr = userMessage(err, "could not update question")
		s.log.Warn(ctx, "question update failed", "question", id, "error", err)
		return failure[models.Question](s.lastErr)
	}

	s.replaceQuestion(id, *question)
	return success(*question)
}

// DeleteQuestion removes a question. On success the element is filtered out
// of the local collection unconditionally, so deleting an already-absent
// identifier is harmless.
func (s *SessionService) DeleteQuestion(ctx context.Context, id models.ID) Ack {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.DeleteQuestion(ctx, id); err != nil {
		s.lastErr = userMessage(err, "could not delete question")
		s.log.Warn(ctx, "question delete failed", "question", id, "error", err)
		return failure[struct{}](s.lastErr)
	}

	kept := make([]models.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	s.questions = kept
	return okAck()
}

// RegenerateQuestion requests a fresh instance for an existing identifier,
// with the same merge semantics as UpdateQuestion.
func (s *SessionService) RegenerateQuestion(ctx context.Context, id models.ID) Result[models.Question] {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, err := s.client.RegenerateQuestion(ctx, id)
	if err != nil {
		s.lastErr = userMessage(err, "could not regenerate question")
		s.log.Warn(ctx, "question regeneration failed", "question", id, "error", err)
		return failure[models.Question](s.lastErr)
	}

	s.replaceQuestion(id, *question)
	return success(*question)
}

// ExportQuestions fetches the export artifact and writes it to the export
// directory as questions_<sessionID>.<format>. The written path is returned.
func (s *SessionService) ExportQuestions(ctx context.Context, sessionID models.ID, format string, includeAnswers bool) Result[string] {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.client.ExportSession(ctx, sessionID, models.ExportOptions{
		Format:         format,
		IncludeAnswers: includeAnswers,
	})
	if err != nil {
		s.lastErr = userMessage(err, "export failed")
		s.log.Warn(ctx, "export failed", "session", sessionID, "format", format, "error", err)
		return failure[string](s.lastErr)
	}

	path := filepath.Join(s.exportDir, fmt.Sprintf("questions_%s.%s", sessionID, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.lastErr = "could not save export file"
		s.log.Error(ctx, "export write failed", "path", path, "error", err)
		return failure[string](s.lastErr)
	}

	s.log.Info(ctx, "export written", "path", path, "bytes", len(data))
	return success(path)
}

// ClearError resets the shared error slot.
func (s *SessionService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// Err returns the last recorded error message. Concurrent failing operations
// are last-write-wins; messages overwrite, they do not accumulate.
func (s *SessionService) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Sessions returns a copy of the loaded session list.
func (s *SessionService) Sessions() []models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySessions(s.sessions)
}

// Current returns a copy of the active session, or nil.
func (s *SessionService) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	current := *s.current
	return &current
}

// Questions returns a copy of the active question collection.
func (s *SessionService) Questions() []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyQuestions(s.questions)
}

// Progress reports generation progress: 0 or 100, nothing in between.
func (s *SessionService) Progress() int {
	return int(s.progress.Load())
}

// Loading reports whether a fetch/upload operation is in flight.
func (s *SessionService) Loading() bool {
	return s.loading.Load()
}

// Generating reports whether a generation call is in flight.
func (s *SessionService) Generating() bool {
	return s.generating.Load()
}

// replaceQuestion swaps the element with the given id in place. Callers hold mu.
func (s *SessionService) replaceQuestion(id models.ID, question models.Question) {
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions[i] = question
			return
		}
	}
}

func copySessions(in []models.Session) []models.Session {
	if in == nil {
		return nil
	}
	return append([]models.Session(nil), in...)
}

func copyQuestions(in []models.Question) []models.Question {
	if in == nil {
		return nil
	}
	return append([]models.Question(nil), in...)
}
