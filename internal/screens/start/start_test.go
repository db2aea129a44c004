package start

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screens/customize"
	"github.com/abhisek/quizzy/internal/session"
)

type profileBackend struct {
	mu    sync.Mutex
	saved []session.Profile
}

func (b *profileBackend) GenerateQuiz(context.Context, quizgen.QuizConfig) ([]quizgen.Question, error) {
	return nil, nil
}

func (b *profileBackend) Feedback(context.Context, quizgen.FeedbackInput) (string, error) {
	return "", nil
}

func (b *profileBackend) SaveProfile(_ context.Context, p session.Profile) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved = append(b.saved, p)
	return nil
}

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

func TestStartScreen_RequiresSubject(t *testing.T) {
	sess := session.New(&profileBackend{})
	s := New(sess)
	s.Init()

	for range 3 {
		s.Update(enter)
	}

	if s.focus != fieldSubject {
		t.Errorf("expected focus back on subject, got %d", s.focus)
	}
	if !strings.Contains(s.View(100, 30), "Subject is required") {
		t.Error("expected validation message")
	}
	if sess.State().Subject != "" {
		t.Error("session should not be configured")
	}
}

func TestStartScreen_SubmitConfiguresAndPushes(t *testing.T) {
	backend := &profileBackend{}
	sess := session.New(backend)
	sess.Configure("Ada", "Physics", "Optics")
	sess.Wait()

	s := New(sess)
	s.Init()
	if s.inputs[fieldSubject].Value() != "Physics" {
		t.Fatalf("expected prefilled subject, got %q", s.inputs[fieldSubject].Value())
	}

	var cmd tea.Cmd
	for range 3 {
		_, cmd = s.Update(enter)
	}
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*customize.CustomizeScreen); !ok {
		t.Errorf("expected customize screen, got %T", push.Screen)
	}

	sess.Wait()
	backend.mu.Lock()
	defer backend.mu.Unlock()
	if len(backend.saved) != 2 {
		t.Fatalf("expected 2 profile saves, got %d", len(backend.saved))
	}
	if got := backend.saved[1]; got.Name != "Ada" || got.LastSubject != "Physics" {
		t.Errorf("unexpected profile %+v", got)
	}
}

func TestStartScreen_FocusCycles(t *testing.T) {
	s := New(session.New(&profileBackend{}))
	s.Init()

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.focus != fieldName {
		t.Errorf("expected focus to wrap to name, got %d", s.focus)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.focus != fieldTopic {
		t.Errorf("expected focus to wrap back to topic, got %d", s.focus)
	}
}
