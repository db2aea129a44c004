package client

import (
	"context"
	"log/slog"

	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/session"
)

// Local runs generation in-process instead of over HTTP.
type Local struct {
	gen    *quizgen.Generator
	logger *slog.Logger
}

var _ session.Backend = (*Local)(nil)

// NewLocal wraps gen as a session backend.
func NewLocal(gen *quizgen.Generator, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{gen: gen, logger: logger}
}

func (l *Local) GenerateQuiz(ctx context.Context, cfg quizgen.QuizConfig) ([]quizgen.Question, error) {
	return l.gen.GenerateQuestions(ctx, cfg)
}

func (l *Local) Feedback(ctx context.Context, in quizgen.FeedbackInput) (string, error) {
	return l.gen.GenerateFeedback(ctx, in)
}

// SaveProfile only logs; profiles are kept in the session state.
func (l *Local) SaveProfile(_ context.Context, p session.Profile) error {
	l.logger.Debug("profile updated", "name", p.Name, "subject", p.LastSubject)
	return nil
}
