package models

// GenerationParams controls a generation run. Defaults mirror the backend
// schema so an empty CLI invocation produces a sensible request.
type GenerationParams struct {
	NumQuestions           int            `json:"num_questions"`
	QuestionTypes          []QuestionType `json:"question_types"`
	DifficultyDistribution map[string]any `json:"difficulty_distribution,omitempty"`
	TopicsFilter           []string       `json:"topics_filter,omitempty"`
	AIProvider             string         `json:"ai_provider,omitempty"`
}

// DefaultGenerationParams returns the backend's documented defaults.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		NumQuestions:  10,
		QuestionTypes: []QuestionType{MultipleChoice, TrueFalse},
		DifficultyDistribution: map[string]any{
			string(DifficultyEasy):   0.3,
			string(DifficultyMedium): 0.5,
			string(DifficultyHard):   0.2,
		},
	}
}

// GenerationResult is the payload of a successful generate call.
type GenerationResult struct {
	SessionID          ID             `json:"session_id"`
	Questions          []Question     `json:"questions"`
	QuestionsGenerated int            `json:"questions_generated"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

// ExportOptions selects the format of an export artifact.
type ExportOptions struct {
	Format         string `json:"format"`
	IncludeAnswers bool   `json:"include_answers"`
}
