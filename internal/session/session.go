package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/store"
)

// StateKey is the store key the session is persisted under.
const StateKey = "ai-quiz-state"

const (
	// profileSaveTimeout bounds the background profile save.
	profileSaveTimeout = 10 * time.Second

	// stateWriteTimeout bounds each state write, which runs under the
	// session lock.
	stateWriteTimeout = 2 * time.Second
)

// ErrStale is returned when a result arrives after the session was reset
// or restarted. The result is dropped.
var ErrStale = errors.New("session changed while request was in flight")

// Profile is the learner profile sent on Configure.
type Profile struct {
	Name           string             `json:"name"`
	LastSubject    string             `json:"lastSubject"`
	LastDifficulty quizgen.Difficulty `json:"lastDifficulty"`
}

// Backend generates quizzes and feedback. It is either the HTTP client or
// an in-process generator.
type Backend interface {
	GenerateQuiz(ctx context.Context, cfg quizgen.QuizConfig) ([]quizgen.Question, error)
	Feedback(ctx context.Context, in quizgen.FeedbackInput) (string, error)
	SaveProfile(ctx context.Context, p Profile) error
}

// StateStore is the durable key-value store the session is saved to.
type StateStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Option configures a Session.
type Option func(*Session)

// WithStore persists every committed state to st.
func WithStore(st StateStore) Option {
	return func(s *Session) { s.store = st }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session owns one quiz session. All methods are safe for concurrent use;
// readers always see a state produced by a complete transition.
type Session struct {
	mu    sync.Mutex
	state State

	// generation is bumped by Start and ResetForNewTest. Async results
	// carrying an older value are dropped.
	generation uint64

	backend Backend
	store   StateStore
	logger  *slog.Logger

	background sync.WaitGroup
}

// New creates a session with the initial state.
func New(backend Backend, opts ...Option) *Session {
	s := &Session{
		state:   NewState(),
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load creates a session and restores the last saved state from st. A
// missing entry yields a fresh session. A saved state that was still
// loading is restored as not loading, since the request that owned it is
// gone.
func Load(ctx context.Context, backend Backend, st StateStore, opts ...Option) (*Session, error) {
	s := New(backend, append(opts, WithStore(st))...)

	data, err := st.Get(ctx, StateKey)
	if errors.Is(err, store.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}

	restored := NewState()
	if err := json.Unmarshal(data, &restored); err != nil {
		s.logger.Warn("discarding unreadable session state", "err", err)
		return s, nil
	}
	if restored.Answers == nil {
		restored.Answers = map[string]string{}
	}
	if restored.Status == nil {
		restored.Status = map[string]QuestionStatus{}
	}
	restored.IsLoading = false

	s.state = restored
	return s, nil
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Configure sets the learner identity and subject, then saves the profile
// in the background. Save failures are logged and otherwise ignored.
func (s *Session) Configure(userName, subject, topic string) {
	s.mu.Lock()
	s.commit(Configure(s.state, userName, subject, topic))
	p := Profile{
		Name:           s.state.UserName,
		LastSubject:    s.state.Subject,
		LastDifficulty: s.state.Difficulty,
	}
	s.mu.Unlock()

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		ctx, cancel := context.WithTimeout(context.Background(), profileSaveTimeout)
		defer cancel()
		if err := s.backend.SaveProfile(ctx, p); err != nil {
			s.logger.Warn("profile save failed", "name", p.Name, "err", err)
		}
	}()
}

// SetQuizParameters sets question count and difficulty.
func (s *Session) SetQuizParameters(count int, difficulty quizgen.Difficulty) {
	s.apply(func(st State) State { return SetQuizParameters(st, count, difficulty) })
}

// Start generates a new quiz from the configured parameters. On failure
// the session is left empty with LastError set, and the error is returned.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	token := s.generation
	s.commit(BeginStart(s.state))
	cfg := s.state.QuizConfig()
	s.mu.Unlock()

	questions, err := s.backend.GenerateQuiz(ctx, cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.generation {
		s.logger.Debug("dropping stale quiz", "token", token, "current", s.generation)
		return ErrStale
	}
	if err != nil {
		s.logger.Error("start quiz failed", "subject", cfg.Subject, "err", err)
		s.commit(FailStart(s.state, err))
		return err
	}
	s.commit(CompleteStart(s.state, questions))
	return nil
}

// SelectAnswer records the chosen option for a question.
func (s *Session) SelectAnswer(questionID, optionID string) {
	s.apply(func(st State) State { return SelectAnswer(st, questionID, optionID) })
}

// MarkForReview tags a question for review.
func (s *Session) MarkForReview(questionID string) {
	s.apply(func(st State) State { return MarkForReview(st, questionID) })
}

// GoTo jumps to the question at index.
func (s *Session) GoTo(index int) {
	s.apply(func(st State) State { return GoTo(st, index) })
}

// Next moves to the following question.
func (s *Session) Next() {
	s.apply(Next)
}

// Prev moves to the previous question.
func (s *Session) Prev() {
	s.apply(Prev)
}

// Finish scores the quiz from a snapshot of the answers taken now, then
// requests feedback. A feedback failure is replaced by FeedbackFallback and
// is never returned. The summary is returned even when the feedback is
// dropped as stale.
func (s *Session) Finish(ctx context.Context) Summary {
	s.mu.Lock()
	token := s.generation
	s.commit(Finish(s.state))
	snapshot := s.state
	s.mu.Unlock()

	text, err := s.backend.Feedback(ctx, FeedbackRequest(snapshot))
	if err != nil {
		s.logger.Warn("feedback generation failed", "err", err)
		text = FeedbackFallback
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.generation {
		s.logger.Debug("dropping stale feedback", "token", token, "current", s.generation)
		return snapshot.Summary
	}
	s.commit(ApplyFeedback(s.state, text))
	return snapshot.Summary
}

// ResetForNewTest drops the quiz, keeping learner and quiz settings.
// Results of requests still in flight are discarded.
func (s *Session) ResetForNewTest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.commit(ResetForNewTest(s.state))
}

// Wait blocks until background profile saves have finished.
func (s *Session) Wait() {
	s.background.Wait()
}

func (s *Session) apply(fn func(State) State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(fn(s.state))
}

// commit installs next and persists it. Callers hold s.mu.
func (s *Session) commit(next State) {
	s.state = next
	if s.store == nil {
		return
	}

	data, err := json.Marshal(next)
	if err != nil {
		s.logger.Warn("encode session state", "err", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stateWriteTimeout)
	defer cancel()
	if err := s.store.Set(ctx, StateKey, data); err != nil {
		s.logger.Warn("persist session state", "err", err)
	}
}
