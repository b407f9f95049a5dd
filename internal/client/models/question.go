package models

import "time"

// QuestionType enumerates the kinds of questions the backend generates.
// Wire values are fixed by the backend schema.
type QuestionType string

const (
	MultipleChoice QuestionType = "multipla_escolha"
	TrueFalse      QuestionType = "verdadeiro_falso"
	OpenEnded      QuestionType = "dissertativa"
)

// Difficulty enumerates question difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "facil"
	DifficultyMedium Difficulty = "medio"
	DifficultyHard   Difficulty = "dificil"
)

// Question is one generated quiz item belonging to a session.
type Question struct {
	ID            ID           `json:"id"`
	SessionID     ID           `json:"session_id"`
	QuestionType  QuestionType `json:"question_type"`
	Content       string       `json:"content"`
	OptionA       string       `json:"option_a,omitempty"`
	OptionB       string       `json:"option_b,omitempty"`
	OptionC       string       `json:"option_c,omitempty"`
	OptionD       string       `json:"option_d,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Justification string       `json:"justification,omitempty"`
	Difficulty    Difficulty   `json:"difficulty"`
	Topic         string       `json:"topic,omitempty"`
	IsEdited      bool         `json:"is_edited"`
	IsApproved    bool         `json:"is_approved"`
	CreatedAt     time.Time    `json:"created_at"`
}

// QuestionPatch is a partial update for a question. Nil fields are omitted
// from the request body and left unchanged by the backend.
type QuestionPatch struct {
	Content       *string     `json:"content,omitempty"`
	OptionA       *string     `json:"option_a,omitempty"`
	OptionB       *string     `json:"option_b,omitempty"`
	OptionC       *string     `json:"option_c,omitempty"`
	OptionD       *string     `json:"option_d,omitempty"`
	CorrectAnswer *string     `json:"correct_answer,omitempty"`
	Justification *string     `json:"justification,omitempty"`
	Difficulty    *Difficulty `json:"difficulty,omitempty"`
	Topic         *string     `json:"topic,omitempty"`
	IsApproved    *bool       `json:"is_approved,omitempty"`
}
