package models

import "time"

// Session represents one uploaded document and its generation run. Sessions
// are created by the backend on upload and stay addressable for re-fetch and
// export; the client never deletes them.
type Session struct {
	ID                 ID             `json:"id"`
	SourceFilename     string         `json:"source_filename,omitempty"`
	Status             string         `json:"status,omitempty"`
	WordCount          int            `json:"word_count,omitempty"`
	QuestionCount      int            `json:"question_count,omitempty"`
	QuestionsGenerated int            `json:"questions_generated,omitempty"`
	AIProvider         string         `json:"ai_provider,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	CreatedAt          time.Time      `json:"created_at,omitzero"`
}
