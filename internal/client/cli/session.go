package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmoreira/quizforge/internal/client/models"
)

// Sessions fetches and lists the user's generation sessions.
func (a *App) Sessions(ctx context.Context) error {
	res := a.sessions.FetchSessions(ctx)
	if !res.OK {
		fmt.Println("Error:", res.Err)
		return nil
	}
	if len(res.Value) == 0 {
		fmt.Println("No sessions yet. Use 'upload <path>' to start one.")
		return nil
	}
	for _, s := range res.Value {
		fmt.Printf("%s  %-12s %-30s questions: %d\n", s.ID, s.Status, s.SourceFilename, s.QuestionCount)
	}
	return nil
}

// Upload sends a local document to the backend and makes the resulting
// session current.
func (a *App) Upload(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		fmt.Println("Error:", err)
		return nil
	}
	defer f.Close()

	res := a.sessions.UploadFile(ctx, filepath.Base(path), f)
	if !res.OK {
		fmt.Println("Upload failed:", res.Err)
		return nil
	}

	s := res.Value
	fmt.Printf("Uploaded %s (session %s, %d words)\n", s.SourceFilename, s.ID, s.WordCount)
	fmt.Println("Use 'generate [n]' to generate questions.")
	return nil
}

// Generate runs question generation for the current session. An optional
// numeric argument overrides the default question count.
func (a *App) Generate(ctx context.Context, args []string) error {
	cur := a.sessions.Current()
	if cur == nil {
		fmt.Println("No current session. Use 'upload <path>' first.")
		return nil
	}

	params := models.DefaultGenerationParams()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Println("Usage: generate [n]  (n must be a positive number)")
			return nil
		}
		params.NumQuestions = n
	}

	fmt.Printf("Generating %d questions for session %s, this can take a while...\n", params.NumQuestions, cur.ID)
	res := a.sessions.GenerateQuestions(ctx, cur.ID, params)
	if !res.OK {
		fmt.Println("Generation failed:", res.Err)
		return nil
	}

	fmt.Printf("Generated %d questions. Use 'questions' to review them.\n", len(res.Value))
	return nil
}

// Questions fetches and lists questions for the given session ID, or for the
// current session when no argument is given.
func (a *App) Questions(ctx context.Context, args []string) error {
	var sessionID models.ID
	if len(args) > 0 {
		sessionID = models.ID(args[0])
	} else {
		cur := a.sessions.Current()
		if cur == nil {
			fmt.Println("Usage: questions <session-id>  (no current session)")
			return nil
		}
		sessionID = cur.ID
	}

	res := a.sessions.FetchQuestions(ctx, sessionID)
	if !res.OK {
		fmt.Println("Error:", res.Err)
		return nil
	}
	if len(res.Value) == 0 {
		fmt.Println("No questions in this session.")
		return nil
	}
	for _, q := range res.Value {
		flags := ""
		if q.IsEdited {
			flags += " [edited]"
		}
		if q.IsApproved {
			flags += " [approved]"
		}
		fmt.Printf("%s  %-16s %-7s %s%s\n", q.ID, q.QuestionType, q.Difficulty, truncate(q.Content, 60), flags)
	}
	return nil
}

// Show prints one question in full from the locally cached collection.
func (a *App) Show(ctx context.Context, id string) error {
	q := a.findQuestion(models.ID(id))
	if q == nil {
		fmt.Println("Question not found. Use 'questions' to refresh the list.")
		return nil
	}

	fmt.Println(q.Content)
	if q.QuestionType == models.MultipleChoice {
		fmt.Printf("  A) %s\n  B) %s\n  C) %s\n  D) %s\n", q.OptionA, q.OptionB, q.OptionC, q.OptionD)
	}
	fmt.Printf("Answer: %s\n", q.CorrectAnswer)
	if q.Justification != "" {
		fmt.Printf("Justification: %s\n", q.Justification)
	}
	fmt.Printf("Type: %s  Difficulty: %s", q.QuestionType, q.Difficulty)
	if q.Topic != "" {
		fmt.Printf("  Topic: %s", q.Topic)
	}
	fmt.Println()
	fmt.Printf("Edited: %v  Approved: %v\n", q.IsEdited, q.IsApproved)
	return nil
}

// Edit interactively builds a partial update for a question. Empty answers
// leave the corresponding field unchanged.
func (a *App) Edit(ctx context.Context, id string) error {
	q := a.findQuestion(models.ID(id))
	if q == nil {
		fmt.Println("Question not found. Use 'questions' to refresh the list.")
		return nil
	}

	var patch models.QuestionPatch

	content, err := getSimpleText(a.reader, "New content (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if content != "" {
		patch.Content = &content
	}

	answer, err := getSimpleText(a.reader, "New correct answer (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "" {
		patch.CorrectAnswer = &answer
	}

	approve, err := getSimpleText(a.reader, "Approve? (y/n, empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if approve != "" {
		v := strings.HasPrefix(strings.ToLower(approve), "y")
		patch.IsApproved = &v
	}

	if patch == (models.QuestionPatch{}) {
		fmt.Println("Nothing to change.")
		return nil
	}

	res := a.sessions.UpdateQuestion(ctx, q.ID, patch)
	if !res.OK {
		fmt.Println("Update failed:", res.Err)
		return nil
	}
	fmt.Println("Question updated.")
	return nil
}

// Delete removes a question.
func (a *App) Delete(ctx context.Context, id string) error {
	res := a.sessions.DeleteQuestion(ctx, models.ID(id))
	if !res.OK {
		fmt.Println("Delete failed:", res.Err)
		return nil
	}
	fmt.Println("Question deleted.")
	return nil
}

// Regen asks the backend for a fresh replacement of a question.
func (a *App) Regen(ctx context.Context, id string) error {
	res := a.sessions.RegenerateQuestion(ctx, models.ID(id))
	if !res.OK {
		fmt.Println("Regenerate failed:", res.Err)
		return nil
	}
	fmt.Println("Regenerated:", truncate(res.Value.Content, 80))
	return nil
}

// Export writes the current session's questions to a local file in the
// requested format.
func (a *App) Export(ctx context.Context, format string) error {
	cur := a.sessions.Current()
	if cur == nil {
		fmt.Println("No current session. Use 'upload <path>' first.")
		return nil
	}

	includeAnswers, err := GetYesNo(a.reader, "Include answers?", os.Stdout)
	if err != nil {
		return err
	}

	res := a.sessions.ExportQuestions(ctx, cur.ID, format, includeAnswers)
	if !res.OK {
		fmt.Println("Export failed:", res.Err)
		return nil
	}
	fmt.Println("Saved to:", res.Value)
	return nil
}

func (a *App) findQuestion(id models.ID) *models.Question {
	for _, q := range a.sessions.Questions() {
		if q.ID == id {
			return &q
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
