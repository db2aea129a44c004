package session

import "github.com/abhisek/quizzy/internal/quizgen"

// QuestionStatus is the per-question navigation tag shown in the question
// palette. It never affects scoring.
type QuestionStatus string

const (
	StatusNotVisited  QuestionStatus = "notVisited"
	StatusNotAnswered QuestionStatus = "notAnswered"
	StatusAnswered    QuestionStatus = "answered"
	StatusMarked      QuestionStatus = "marked"
)

// State is the whole client-side quiz session. It is persisted as JSON,
// so field names follow the stored lowerCamel keys.
type State struct {
	UserName   string             `json:"userName"`
	Subject    string             `json:"subject"`
	Topic      string             `json:"topic"`
	Count      int                `json:"count"`
	Difficulty quizgen.Difficulty `json:"difficulty"`

	Questions    []quizgen.Question        `json:"questions"`
	CurrentIndex int                       `json:"currentIndex"`
	Answers      map[string]string         `json:"answers"`
	Status       map[string]QuestionStatus `json:"status"`

	Summary  Summary `json:"summary"`
	Feedback string  `json:"feedback"`

	IsLoading bool `json:"isLoading"`

	// LastError is set when starting a quiz failed and cleared by the next
	// start or reset.
	LastError string `json:"lastError,omitempty"`
}

// NewState returns the initial, empty session state.
func NewState() State {
	return State{
		Count:      quizgen.DefaultCount,
		Difficulty: quizgen.DifficultyEasy,
		Answers:    map[string]string{},
		Status:     map[string]QuestionStatus{},
	}
}

// HasQuestions reports whether a quiz is loaded.
func (s State) HasQuestions() bool {
	return len(s.Questions) > 0
}

// CurrentQuestion returns the question at CurrentIndex.
func (s State) CurrentQuestion() (quizgen.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return quizgen.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// StatusOf returns the status of a question; unknown IDs read as not
// visited.
func (s State) StatusOf(questionID string) QuestionStatus {
	if st, ok := s.Status[questionID]; ok {
		return st
	}
	return StatusNotVisited
}

// StatusCounts tallies questions by status.
func (s State) StatusCounts() map[QuestionStatus]int {
	counts := make(map[QuestionStatus]int, 4)
	for _, q := range s.Questions {
		counts[s.StatusOf(q.ID)]++
	}
	return counts
}

// QuizConfig returns the generation parameters held by the session.
func (s State) QuizConfig() quizgen.QuizConfig {
	return quizgen.QuizConfig{
		Subject:    s.Subject,
		Topic:      s.Topic,
		Count:      s.Count,
		Difficulty: s.Difficulty,
	}
}

func (s State) hasQuestion(id string) bool {
	for _, q := range s.Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

// clone copies the maps so transitions never write into a state that a
// caller still holds. Questions are immutable and shared.
func (s State) clone() State {
	answers := make(map[string]string, len(s.Answers))
	for k, v := range s.Answers {
		answers[k] = v
	}
	status := make(map[string]QuestionStatus, len(s.Status))
	for k, v := range s.Status {
		status[k] = v
	}
	s.Answers = answers
	s.Status = status
	return s
}
