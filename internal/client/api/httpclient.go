package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rmoreira/quizforge/internal/client/models"
	"github.com/rmoreira/quizforge/internal/logging"
)

// RequestTimeout bounds every backend call. Generation against large
// documents takes minutes, so the timeout is sized for the slowest operation
// in the workflow; a timed-out call surfaces as an ordinary ErrUnavailable.
const RequestTimeout = 2 * time.Minute

const maxErrorBody = 1 << 20

// HTTPClient is the concrete gateway over the backend's REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	log     logging.Logger

	// onUnauthorized is the "redirect to login" hook: invoked after a 401 has
	// already uninstalled the credential, regardless of which operation
	// triggered the call.
	onUnauthorized func()
}

func NewHTTPClient(baseURL string, creds CredentialSource, onUnauthorized func(), log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &http.Client{Timeout: RequestTimeout},
		creds:          creds,
		log:            log,
		onUnauthorized: onUnauthorized,
	}
}

// envelope is the backend's {status, message, data} wrapper used by the
// session and upload endpoints. Question endpoints return bare objects.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%s %s: %w: %v", method, path, ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request completed",
		"method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
	return resp, nil
}

// checkResponse translates non-2xx responses. A 401 triggers the global side
// effect (credential uninstall + login redirect hook) and is then re-raised
// so the calling operation's own error handling still runs.
func (c *HTTPClient) checkResponse(ctx context.Context, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := newAPIError(resp.StatusCode, decodeDetail(resp.Body))

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.creds.Clear(ctx); err != nil {
			c.log.Error(ctx, "failed to uninstall rejected credential", "error", err)
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	}
	return apiErr
}

// decodeDetail pulls the backend's {"detail": "..."} message out of an error
// body. Anything unparseable yields "" and the caller falls back to the
// status text.
func decodeDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var parsed struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if s, ok := parsed.Detail.(string); ok {
		return s
	}
	return ""
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(ctx, resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	resp, err := c.do(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(ctx, resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// unwrapData decodes an envelope response body into out.
func unwrapData(r io.Reader, out any) error {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response envelope: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(ctx, resp); err != nil {
		return "", err
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	return out.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password, fullName string) error {
	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name,omitempty"`
	}{Email: email, Password: password, FullName: fullName}

	return c.sendJSON(ctx, http.MethodPost, "/auth/register", in, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Identity, error) {
	var identity models.Identity
	if err := c.getJSON(ctx, "/auth/me", &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *HTTPClient) ListSessions(ctx context.Context) ([]models.Session, error) {
	resp, err := c.do(ctx, http.MethodGet, "/generation/sessions", nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(ctx, resp); err != nil {
		return nil, err
	}

	var sessions []models.Session
	if err := unwrapData(resp.Body, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *HTTPClient) UploadFile(ctx context.Context, filename string, r io.Reader) (*models.Session, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("failed to read upload source: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/upload/file", &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(ctx, resp); err != nil {
		return nil, err
	}

	var session models.Session
	if err := unwrapData(resp.Body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) GenerateQuestions(ctx context.Context, sessionID models.ID, params models.GenerationParams) (*models.GenerationResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/generation/"+url.PathEscape(sessionID.String())+"/generate", jsonBody(params), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(ctx, resp); err != nil {
		return nil, err
	}

	var result models.GenerationResult
	if err := unwrapData(resp.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) FetchQuestions(ctx context.Context, sessionID models.ID) ([]models.Question, error) {
	var questions []models.Question
	if err := c.getJSON(ctx, "/generation/"+url.PathEscape(sessionID.String())+"/questions", &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *HTTPClient) UpdateQuestion(ctx context.Context, id models.ID, patch models.QuestionPatch) (*models.Question, error) {
	var question models.Question
	if err := c.sendJSON(ctx, http.MethodPut, "/generation/questions/"+url.PathEscape(id.String()), patch, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (c *HTTPClient) DeleteQuestion(ctx context.Context, id models.ID) error {
	return c.sendJSON(ctx, http.MethodDelete, "/generation/questions/"+url.PathEscape(id.String()), nil, nil)
}

func (c *HTTPClient) RegenerateQuestion(ctx context.Context, id models.ID) (*models.Question, error) {
	var question models.Question
	if err := c.sendJSON(ctx, http.MethodPost, "/generation/questions/"+url.PathEscape(id.String())+"/regenerate", nil, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (c *HTTPClient) ExportSession(ctx context.Context, sessionID models.ID, opts models.ExportOptions) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodPost, "/export/session/"+url.PathEscape(sessionID.String()), jsonBody(opts), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(ctx, resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read export payload: %w", err)
	}
	return data, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func jsonBody(in any) io.Reader {
	raw, err := json.Marshal(in)
	if err != nil {
		// All request types here are plain structs; marshalling cannot fail.
		panic(err)
	}
	return bytes.NewReader(raw)
}
