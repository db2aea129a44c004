package quizgen

import "strings"

// Difficulty is the requested quiz difficulty. Values outside the named
// constants are passed to the model verbatim.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the named difficulty levels in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

const (
	// DefaultCount is used when a request omits the question count.
	DefaultCount = 5

	// MaxCount bounds a single generation request.
	MaxCount = 50
)

// Option is one answer choice of a question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a multiple-choice question as returned by the model.
// CorrectOptionID matches exactly one Options[].ID.
type Question struct {
	ID              string   `json:"id"`
	Question        string   `json:"question"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correctOptionId"`
}

// Option returns the option with the given ID.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// QuizConfig holds the parameters of one generation request.
type QuizConfig struct {
	Subject    string     `json:"subject"`
	Topic      string     `json:"topic"`
	Count      int        `json:"count"`
	Difficulty Difficulty `json:"difficulty"`
}

// WithDefaults fills in the default count and difficulty and trims
// whitespace.
func (c QuizConfig) WithDefaults() QuizConfig {
	c.Subject = strings.TrimSpace(c.Subject)
	c.Topic = strings.TrimSpace(c.Topic)
	if c.Count == 0 {
		c.Count = DefaultCount
	}
	if strings.TrimSpace(string(c.Difficulty)) == "" {
		c.Difficulty = DifficultyEasy
	}
	return c
}

// EffectiveTopic is the topic sent to the model; it falls back to the
// subject.
func (c QuizConfig) EffectiveTopic() string {
	if c.Topic != "" {
		return c.Topic
	}
	return c.Subject
}

// Validate reports missing or out-of-range inputs as *ValidationError.
func (c QuizConfig) Validate() error {
	if c.Subject == "" {
		return &ValidationError{Field: "subject", Message: "Subject is required"}
	}
	if c.Count < 1 || c.Count > MaxCount {
		return &ValidationError{Field: "count", Message: "Count must be between 1 and 50"}
	}
	return nil
}

// FeedbackInput describes a finished quiz for feedback generation.
type FeedbackInput struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
}
