// Package cli provides the interactive QuizForge command-line client.
//
// It wires configuration, the local credential store, the backend API client,
// and an interactive REPL covering the whole document-to-quiz workflow.
// Typical flow: log in (or resume a persisted session), upload a document,
// generate questions, review and edit them, and export the result.
//
// Key features:
//   - Register / Login / Logout with a credential persisted across runs
//   - Upload a source document and track the resulting session
//   - Generate questions with configurable count
//   - List, show, edit, delete, and regenerate individual questions
//   - Export the reviewed set to a file
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
