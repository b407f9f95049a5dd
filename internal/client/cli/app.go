package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/rmoreira/quizforge/internal/client/api"
	"github.com/rmoreira/quizforge/internal/client/auth"
	"github.com/rmoreira/quizforge/internal/client/config"
	"github.com/rmoreira/quizforge/internal/client/credentials"
	"github.com/rmoreira/quizforge/internal/client/services"
	"github.com/rmoreira/quizforge/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	authCtx  *auth.Context
	client   api.Client
	auth     *services.AuthService
	sessions *services.SessionService
	reader   *bufio.Reader

	// sessionExpired is set by the API client's unauthorized hook and consumed
	// by the REPL before the next prompt.
	sessionExpired atomic.Bool
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := credentials.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	authCtx, err := auth.NewContext(ctx, credentials.NewSQLiteRepository(db))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{config: c, log: log, db: db, authCtx: authCtx, reader: bufio.NewReader(os.Stdin)}

	apiClient := api.NewHTTPClient(c.ResolveBaseURL(), authCtx, app.handleSessionExpired, log)
	app.client = apiClient
	app.auth = services.NewAuthService(apiClient, authCtx, log)
	app.sessions = services.NewSessionService(apiClient, c.ExportDir, log)

	return app, nil
}

// handleSessionExpired records that the backend rejected the credential.
// The credential itself has already been uninstalled by the API client;
// the REPL surfaces the notice before the next prompt.
func (a *App) handleSessionExpired() {
	a.sessionExpired.Store(true)
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// notice returns a pending one-shot user notice, or "".
func (a *App) notice() string {
	if a.sessionExpired.Swap(false) {
		return "Session expired. Please log in again."
	}
	return ""
}

func (a *App) getStatus() string {
	if id := a.auth.Identity(); id != nil {
		return fmt.Sprintf("(%s)", id.Email)
	}
	if a.isLoggedIn() {
		return "(logged in)"
	}
	return ""
}

// Run resumes a persisted session, if any, and enters the REPL. It blocks
// until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	fmt.Println("Welcome to QuizForge CLI (type 'help' for commands)")

	if a.authCtx.IsAuthenticated() {
		a.auth.FetchIdentity(ctx)
		if id := a.auth.Identity(); id != nil {
			fmt.Printf("Resumed session for %s\n", id.Email)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() error {
	if err := a.client.Close(); err != nil {
		return err
	}
	return a.db.Close()
}
