package quiz

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/client"
	"github.com/abhisek/quizzy/internal/llm"
	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/screens/report"
	"github.com/abhisek/quizzy/internal/session"
	"github.com/abhisek/quizzy/internal/ui/components"
)

const twoQuestions = `{"questions":[` +
	`{"id":"q1","question":"2+2?","options":[{"id":"A","text":"3"},{"id":"B","text":"4"},{"id":"C","text":"5"},{"id":"D","text":"6"}],"correctOptionId":"B"},` +
	`{"id":"q2","question":"3*3?","options":[{"id":"A","text":"6"},{"id":"B","text":"8"},{"id":"C","text":"9"},{"id":"D","text":"12"}],"correctOptionId":"C"}]}`

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testSession(responses ...llm.MockResponse) *session.Session {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := quizgen.New(llm.NewMockProvider(responses...), quizgen.Config{Logger: quiet})
	s := session.New(client.NewLocal(gen, quiet), session.WithLogger(quiet))
	s.Configure("Ada", "Math", "Arithmetic")
	s.SetQuizParameters(2, quizgen.DifficultyEasy)
	s.Wait()
	return s
}

// readyMsg runs the Init batch and returns the generation result, skipping
// spinner ticks.
func readyMsg(t *testing.T, cmd tea.Cmd) quizReadyMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case quizReadyMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(quizReadyMsg); ok {
				return m
			}
		}
	}
	t.Fatal("no quizReadyMsg produced")
	return quizReadyMsg{}
}

func startedScreen(t *testing.T) (*QuizScreen, *session.Session) {
	t.Helper()
	sess := testSession(llm.MockResponse{Text: twoQuestions})
	q := New(sess)
	scr, _ := q.Update(readyMsg(t, q.Init()))
	return scr.(*QuizScreen), sess
}

func TestQuizScreen_StartPromotesFirstQuestion(t *testing.T) {
	q, sess := startedScreen(t)

	st := sess.State()
	if len(st.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(st.Questions))
	}
	if got := st.StatusOf("q1"); got != session.StatusNotAnswered {
		t.Errorf("q1 status = %s, want notAnswered", got)
	}
	if got := st.StatusOf("q2"); got != session.StatusNotVisited {
		t.Errorf("q2 status = %s, want notVisited", got)
	}
	if q.Title() != "Question 1 of 2" {
		t.Errorf("unexpected title %q", q.Title())
	}
	if q.loading {
		t.Error("expected loading to be cleared")
	}
}

func TestQuizScreen_AnswerAndNavigate(t *testing.T) {
	q, sess := startedScreen(t)
	var scr screen.Screen = q

	scr, cmd := scr.Update(keyPress('b'))
	if cmd == nil {
		t.Fatal("expected option chosen command")
	}
	scr, _ = scr.Update(cmd())

	scr, _ = scr.Update(keyPress('n'))
	scr, _ = scr.Update(keyPress('m'))

	st := sess.State()
	if st.Answers["q1"] != "B" {
		t.Errorf("q1 answer = %q, want B", st.Answers["q1"])
	}
	if st.CurrentIndex != 1 {
		t.Errorf("current index = %d, want 1", st.CurrentIndex)
	}
	if got := st.StatusOf("q1"); got != session.StatusAnswered {
		t.Errorf("q1 status = %s, want answered", got)
	}
	if got := st.StatusOf("q2"); got != session.StatusMarked {
		t.Errorf("q2 status = %s, want marked", got)
	}

	scr, _ = scr.Update(keyPress('1'))
	if sess.State().CurrentIndex != 0 {
		t.Errorf("expected jump to first question")
	}
	if o := scr.(*QuizScreen).options; o.Chosen != "B" {
		t.Errorf("option list not restored, chosen = %q", o.Chosen)
	}

	scr, _ = scr.Update(keyPress('9'))
	if sess.State().CurrentIndex != 0 {
		t.Errorf("out-of-range jump moved to %d", sess.State().CurrentIndex)
	}
}

func TestQuizScreen_FinishPushesReport(t *testing.T) {
	q, _ := startedScreen(t)

	_, cmd := q.Update(keyPress('f'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*report.ReportScreen); !ok {
		t.Errorf("expected report screen, got %T", push.Screen)
	}
}

func TestQuizScreen_KeysIgnoredWhileLoading(t *testing.T) {
	sess := testSession(llm.MockResponse{Text: twoQuestions})
	q := New(sess)
	cmd := q.Init()

	q.Update(keyPress('f'))
	q.Update(keyPress('r'))
	if !q.loading {
		t.Fatal("expected loading")
	}

	q.Update(readyMsg(t, cmd))
	if q.loading {
		t.Error("expected loading cleared")
	}
}

func TestQuizScreen_FailureAndRetry(t *testing.T) {
	sess := testSession(
		llm.MockResponse{Err: errors.New("upstream down")},
		llm.MockResponse{Text: twoQuestions},
	)
	q := New(sess)
	q.Update(readyMsg(t, q.Init()))

	st := sess.State()
	if st.HasQuestions() || st.LastError == "" {
		t.Fatalf("expected failed start, got %+v", st)
	}
	if !strings.Contains(q.View(100, 30), "Could not start the quiz") {
		t.Error("expected error view")
	}

	_, cmd := q.Update(keyPress('r'))
	if !q.loading {
		t.Error("expected retry to start loading")
	}
	q.Update(readyMsg(t, cmd))

	if !sess.State().HasQuestions() {
		t.Error("expected questions after retry")
	}
}

func TestQuizScreen_Back(t *testing.T) {
	q, _ := startedScreen(t)
	if q.Back() {
		t.Error("expected Back to be refused during a quiz")
	}

	sess := testSession(llm.MockResponse{Err: errors.New("upstream down")})
	failed := New(sess)
	failed.Update(readyMsg(t, failed.Init()))
	if !failed.Back() {
		t.Fatal("expected Back allowed after a failed start")
	}
	if st := sess.State(); st.LastError != "" || st.Subject != "Math" {
		t.Errorf("expected error cleared and settings kept, got %+v", st)
	}
}

func TestQuizScreen_SpinnerStopsWhenLoaded(t *testing.T) {
	q, _ := startedScreen(t)
	_, cmd := q.Update(components.SpinnerTickMsg{})
	if cmd != nil {
		t.Error("expected spinner to stop once loaded")
	}
}
