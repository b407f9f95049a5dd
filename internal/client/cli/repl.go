package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	notice() string
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Sessions(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Generate(ctx context.Context, args []string) error
	Questions(ctx context.Context, args []string) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Regen(ctx context.Context, id string) error
	Export(ctx context.Context, format string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the QuizForge CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             — show available commands
//	  - register         — create an account
//	  - login            — authenticate
//	  - exit | quit      — leave the program
//
//	Logged in:
//	  - help             — show available commands
//	  - whoami           — show the authenticated user
//	  - sessions         — list generation sessions
//	  - upload <path>    — upload a source document
//	  - generate [n]     — generate questions for the current session
//	  - questions [id]   — fetch questions (current session by default)
//	  - show <id>        — show one question in full
//	  - edit <id>        — edit a question interactively
//	  - delete <id>      — delete a question
//	  - regen <id>       — regenerate a question
//	  - export <format>  — export the current session's questions
//	  - logout           — log out
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if n := a.notice(); n != "" {
			printlnFn(n)
		}
		printlnFn(fmt.Sprintf("qf> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, sessions, upload <path>, generate [n], questions [id], show <id>, edit <id>, delete <id>, regen <id>, export <format>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "sessions":
			_ = a.Sessions(ctx)

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path>")
				continue
			}
			_ = a.Upload(ctx, args[0])

		case "generate":
			_ = a.Generate(ctx, args)

		case "questions":
			_ = a.Questions(ctx, args)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "regen":
			if len(args) == 0 {
				printlnFn("Usage: regen <id>")
				continue
			}
			_ = a.Regen(ctx, args[0])

		case "export":
			if len(args) == 0 {
				printlnFn("Usage: export <format>")
				continue
			}
			_ = a.Export(ctx, args[0])

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
