package customize

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screens/quiz"
	"github.com/abhisek/quizzy/internal/session"
)

type nopBackend struct{}

func (nopBackend) GenerateQuiz(context.Context, quizgen.QuizConfig) ([]quizgen.Question, error) {
	return nil, nil
}
func (nopBackend) Feedback(context.Context, quizgen.FeedbackInput) (string, error) { return "", nil }
func (nopBackend) SaveProfile(context.Context, session.Profile) error              { return nil }

func TestCustomizeScreen_Defaults(t *testing.T) {
	sess := session.New(nopBackend{})
	c := New(sess)
	c.Init()

	if c.count.Value() != "5" {
		t.Errorf("count = %q, want 5", c.count.Value())
	}
	if c.difficulty.Current() != "Easy" {
		t.Errorf("difficulty = %q, want Easy", c.difficulty.Current())
	}
}

func TestCustomizeScreen_SubmitStartsQuiz(t *testing.T) {
	sess := session.New(nopBackend{})
	c := New(sess)
	c.Init()
	c.count.SetValue("12")

	c.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}

	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("expected quiz screen, got %T", push.Screen)
	}

	st := sess.State()
	if st.Count != 12 || st.Difficulty != quizgen.DifficultyHard {
		t.Errorf("got count %d difficulty %s", st.Count, st.Difficulty)
	}
}

func TestCustomizeScreen_RejectsBadCount(t *testing.T) {
	tests := []string{"0", "51", "99"}
	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			sess := session.New(nopBackend{})
			c := New(sess)
			c.Init()
			c.count.SetValue(v)

			_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			if cmd != nil {
				t.Error("expected no navigation")
			}
			if !strings.Contains(c.View(100, 30), "Count must be between 1 and 50") {
				t.Error("expected validation message")
			}
			if sess.State().Count != quizgen.DefaultCount {
				t.Errorf("count changed to %d", sess.State().Count)
			}
		})
	}
}

func TestCustomizeScreen_EmptyCountUsesDefault(t *testing.T) {
	sess := session.New(nopBackend{})
	sess.SetQuizParameters(9, quizgen.DifficultyMedium)
	c := New(sess)
	c.Init()
	c.count.SetValue("")

	c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := sess.State().Count; got != quizgen.DefaultCount {
		t.Errorf("count = %d, want %d", got, quizgen.DefaultCount)
	}
	if got := sess.State().Difficulty; got != quizgen.DifficultyMedium {
		t.Errorf("difficulty = %s, want Medium", got)
	}
}
