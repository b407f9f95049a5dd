package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/rmoreira/quizforge/internal/client/api"
	"github.com/rmoreira/quizforge/internal/client/models"
	"github.com/rmoreira/quizforge/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelDebug)
}

// fakeClient implements api.Client for service tests: canned results,
// injectable errors, recorded arguments.
type fakeClient struct {
	LoginToken string
	LoginErr   error
	LoginCalls int

	LastLoginUser string
	LastLoginPass string

	RegisterErr       error
	LastRegisterEmail string
	LastRegisterName  string

	MeIdentity *models.Identity
	MeErr      error

	Sessions       []models.Session
	ListErr        error
	UploadSession  *models.Session
	UploadErr      error
	LastUploadName string
	LastUploadBody []byte

	GenerateResult *models.GenerationResult
	GenerateErr    error
	LastGenParams  models.GenerationParams

	Questions []models.Question
	FetchErr  error

	UpdateQuestionRet *models.Question
	UpdateErr         error
	LastPatch         models.QuestionPatch

	DeleteErr   error
	DeleteCalls int

	RegenQuestionRet *models.Question
	RegenErr         error

	ExportData []byte
	ExportErr  error
	LastExport models.ExportOptions
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, error) {
	f.LoginCalls++
	f.LastLoginUser = username
	f.LastLoginPass = password
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, email, password, fullName string) error {
	f.LastRegisterEmail = email
	f.LastRegisterName = fullName
	return f.RegisterErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.Identity, error) {
	return f.MeIdentity, f.MeErr
}

func (f *fakeClient) ListSessions(ctx context.Context) ([]models.Session, error) {
	return f.Sessions, f.ListErr
}

func (f *fakeClient) UploadFile(ctx context.Context, filename string, r io.Reader) (*models.Session, error) {
	f.LastUploadName = filename
	f.LastUploadBody, _ = io.ReadAll(r)
	return f.UploadSession, f.UploadErr
}

func (f *fakeClient) GenerateQuestions(ctx context.Context, sessionID models.ID, params models.GenerationParams) (*models.GenerationResult, error) {
	f.LastGenParams = params
	return f.GenerateResult, f.GenerateErr
}

func (f *fakeClient) FetchQuestions(ctx context.Context, sessionID models.ID) ([]models.Question, error) {
	return f.Questions, f.FetchErr
}

func (f *fakeClient) UpdateQuestion(ctx context.Context, id models.ID, patch models.QuestionPatch) (*models.Question, error) {
	f.LastPatch = patch
	return f.UpdateQuestionRet, f.UpdateErr
}

func (f *fakeClient) DeleteQuestion(ctx context.Context, id models.ID) error {
	f.DeleteCalls++
	return f.DeleteErr
}

func (f *fakeClient) RegenerateQuestion(ctx context.Context, id models.ID) (*models.Question, error) {
	return f.RegenQuestionRet, f.RegenErr
}

func (f *fakeClient) ExportSession(ctx context.Context, sessionID models.ID, opts models.ExportOptions) ([]byte, error) {
	f.LastExport = opts
	return f.ExportData, f.ExportErr
}

func (f *fakeClient) Close() error { return nil }
