// Package client talks to the quiz HTTP API and implements session.Backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/session"
)

// defaultTimeout covers the server's quota waits plus generation time.
const defaultTimeout = 3 * time.Minute

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
}

// IsQuota reports whether the server rejected the call for quota reasons.
func (e *APIError) IsQuota() bool {
	return e.Status == http.StatusTooManyRequests
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// Client calls the quiz API at a base URL.
type Client struct {
	base string
	http *http.Client
}

var _ session.Backend = (*Client)(nil)

// New creates a client for the API rooted at base, e.g.
// "http://localhost:5000".
func New(base string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimSuffix(base, "/"),
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateQuiz requests a new question set.
func (c *Client) GenerateQuiz(ctx context.Context, cfg quizgen.QuizConfig) ([]quizgen.Question, error) {
	var out struct {
		Questions []quizgen.Question `json:"questions"`
	}
	if err := c.post(ctx, "/api/quiz/generate", cfg, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// Feedback requests feedback text for a finished quiz.
func (c *Client) Feedback(ctx context.Context, in quizgen.FeedbackInput) (string, error) {
	var out struct {
		Feedback string `json:"feedback"`
	}
	if err := c.post(ctx, "/api/quiz/feedback", in, &out); err != nil {
		return "", err
	}
	return out.Feedback, nil
}

// SaveProfile sends the learner profile.
func (c *Client) SaveProfile(ctx context.Context, p session.Profile) error {
	return c.post(ctx, "/api/users", p, nil)
}

// Ping checks that the server answers on its root route.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("reach %s: %w", c.base, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
