package quizgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/quizzy/internal/llm"
)

// GenerateFeedback returns a short plain-text comment on a finished quiz.
func (g *Generator) GenerateFeedback(ctx context.Context, in FeedbackInput) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)

	req := llm.Prompt(feedbackPrompt(in))
	req.System = feedbackSystemPrompt
	req.MaxTokens = g.config.FeedbackMaxTokens

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: generate feedback: %w", ErrGenerationFailed, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty feedback from model", ErrGenerationFailed)
	}
	return text, nil
}
