package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/quizzy/internal/llm"
)

// previewLen bounds the raw-response preview written to the debug log.
const previewLen = 200

// Config holds generator settings.
type Config struct {
	// MaxValidationAttempts is how many times a malformed reply is
	// re-requested before giving up. Quota retries happen below this loop,
	// inside the provider.
	MaxValidationAttempts int

	// MaxTokens caps the question batch response.
	MaxTokens int

	// FeedbackMaxTokens caps the feedback response.
	FeedbackMaxTokens int

	// Temperature for question generation.
	Temperature float64

	// Logger receives raw-response previews and rejection reasons.
	Logger *slog.Logger
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		MaxValidationAttempts: 2,
		MaxTokens:             8192,
		FeedbackMaxTokens:     512,
		Temperature:           0.7,
	}
}

// Generator produces question batches and feedback through a provider.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates a Generator.
func New(provider llm.Provider, cfg Config) *Generator {
	if cfg.MaxValidationAttempts <= 0 {
		cfg.MaxValidationAttempts = 2
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{provider: provider, config: cfg, logger: logger}
}

// GenerateQuestions asks the model for exactly cfg.Count questions.
// Replies that are not valid question sets are re-requested up to
// MaxValidationAttempts times; provider errors are returned at once.
func (g *Generator) GenerateQuestions(ctx context.Context, cfg QuizConfig) ([]Question, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestions)
	prompt := questionPrompt(cfg)

	var lastErr *ErrMalformedResponse
	for attempt := 1; attempt <= g.config.MaxValidationAttempts; attempt++ {
		text := prompt
		if lastErr != nil {
			text += retryNudge(lastErr.Reason)
		}

		req := llm.Prompt(text)
		req.System = questionSystemPrompt
		req.JSON = true
		req.MaxTokens = g.config.MaxTokens
		req.Temperature = g.config.Temperature

		resp, err := g.provider.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("%w: generate questions: %w", ErrGenerationFailed, err)
		}

		g.logger.Debug("raw question response",
			"attempt", attempt,
			"model", resp.Model,
			"preview", preview(resp.Text),
		)

		questions, err := parseQuestionSet(resp.Text, cfg.Count)
		if err == nil {
			return questions, nil
		}

		lastErr = &ErrMalformedResponse{Attempt: attempt, Reason: err.Error(), Err: err}
		g.logger.Warn("rejected question response",
			"attempt", attempt,
			"reason", err.Error(),
		)
	}

	return nil, fmt.Errorf("%w: no valid question set after %d attempts: %w",
		ErrGenerationFailed, g.config.MaxValidationAttempts, lastErr)
}

// parseQuestionSet extracts, checks and decodes a question set.
func parseQuestionSet(raw string, count int) ([]Question, error) {
	obj, ok := ExtractJSON(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object in response")
	}

	items, ok := obj["questions"].([]any)
	if !ok {
		return nil, fmt.Errorf("missing \"questions\" array")
	}
	if len(items) != count {
		return nil, fmt.Errorf("expected %d questions, got %d", count, len(items))
	}

	if err := llm.ValidateValue(QuestionSetSchema, obj); err != nil {
		return nil, err
	}

	normalizeIDs(items)

	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("re-encode questions: %w", err)
	}
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	for i, q := range questions {
		if err := checkQuestion(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return questions, nil
}

// normalizeIDs turns numeric question IDs into strings and assigns fresh
// IDs where one is missing or repeated, so answers can be keyed by ID.
func normalizeIDs(items []any) {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}

		var id string
		switch v := m["id"].(type) {
		case string:
			id = strings.TrimSpace(v)
		case float64:
			id = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if id == "" || seen[id] {
			id = uuid.NewString()
		}
		seen[id] = true
		m["id"] = id
	}
}

func checkQuestion(q Question) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("empty question text")
	}

	ids := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if ids[o.ID] {
			return fmt.Errorf("duplicate option id %q", o.ID)
		}
		ids[o.ID] = true
	}
	if !ids[q.CorrectOptionID] {
		return fmt.Errorf("correctOptionId %q matches no option", q.CorrectOptionID)
	}
	return nil
}

func preview(s string) string {
	if len(s) <= previewLen {
		return s
	}
	return s[:previewLen] + "..."
}
