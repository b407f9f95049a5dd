// Package services contains the application services driving the QuizForge
// client: authentication and the session/question controller. Public
// operations never raise; they return a tagged Result and record the
// user-facing message in the owning service's error slot.
package services

import (
	"github.com/rmoreira/quizforge/internal/client/api"
)

// Result is the outcome of a public operation: either OK with a value, or a
// failure carrying a message fit for direct display.
type Result[T any] struct {
	OK    bool
	Value T
	Err   string
}

// Ack is a Result with no payload.
type Ack = Result[struct{}]

func success[T any](v T) Result[T] {
	return Result[T]{OK: true, Value: v}
}

func failure[T any](msg string) Result[T] {
	return Result[T]{Err: msg}
}

func okAck() Ack {
	return success(struct{}{})
}

// userMessage picks the message shown to the user: the backend's structured
// detail when the error carries one, otherwise the generic fallback. 401s
// never carry their own message into the slot beyond the detail — the global
// handler has already dealt with the credential.
func userMessage(err error, fallback string) string {
	if detail := api.Detail(err); detail != "" {
		return detail
	}
	return fallback
}
