package session

import (
	"strings"

	"github.com/abhisek/quizzy/internal/quizgen"
)

// FeedbackFallback replaces feedback that could not be generated.
const FeedbackFallback = "Could not generate feedback at the moment."

// DefaultLearnerName is sent for feedback when no name was configured.
const DefaultLearnerName = "Learner"

// The functions below are the session transitions. Each takes a state and
// returns the next one without modifying its input.

// Configure sets the learner identity and the quiz subject.
func Configure(s State, userName, subject, topic string) State {
	s = s.clone()
	s.UserName = strings.TrimSpace(userName)
	s.Subject = strings.TrimSpace(subject)
	s.Topic = strings.TrimSpace(topic)
	return s
}

// SetQuizParameters sets question count and difficulty.
func SetQuizParameters(s State, count int, difficulty quizgen.Difficulty) State {
	s = s.clone()
	s.Count = count
	s.Difficulty = difficulty
	return s
}

// BeginStart clears any previous quiz and marks the session as loading.
func BeginStart(s State) State {
	s = clearQuiz(s.clone())
	s.IsLoading = true
	s.LastError = ""
	return s
}

// CompleteStart installs a freshly generated question set. Every question
// starts out not visited.
func CompleteStart(s State, questions []quizgen.Question) State {
	s = s.clone()
	s.Questions = questions
	s.Status = make(map[string]QuestionStatus, len(questions))
	for _, q := range questions {
		s.Status[q.ID] = StatusNotVisited
	}
	s.CurrentIndex = 0
	s.IsLoading = false
	return s
}

// FailStart leaves the session empty and records why.
func FailStart(s State, err error) State {
	s = s.clone()
	s.IsLoading = false
	s.Questions = nil
	if err != nil {
		s.LastError = err.Error()
	}
	return s
}

// SelectAnswer records an answer. The question status becomes answered,
// replacing a review mark. Unknown question IDs are ignored.
func SelectAnswer(s State, questionID, optionID string) State {
	if !s.hasQuestion(questionID) {
		return s
	}
	s = s.clone()
	s.Answers[questionID] = optionID
	s.Status[questionID] = StatusAnswered
	return s
}

// MarkForReview tags a question for review whether or not it is answered.
func MarkForReview(s State, questionID string) State {
	if !s.hasQuestion(questionID) {
		return s
	}
	s = s.clone()
	s.Status[questionID] = StatusMarked
	return s
}

// GoTo jumps to a question by index. Out of range indexes are ignored.
func GoTo(s State, index int) State {
	if index < 0 || index >= len(s.Questions) {
		return s
	}
	s = s.clone()
	s.CurrentIndex = index
	visit(&s, index)
	return s
}

// Next moves forward one question, stopping at the last.
func Next(s State) State {
	if len(s.Questions) == 0 {
		return s
	}
	next := min(s.CurrentIndex+1, len(s.Questions)-1)
	if next == s.CurrentIndex {
		return s
	}
	return GoTo(s, next)
}

// Prev moves back one question, stopping at the first. Status is left
// alone.
func Prev(s State) State {
	prev := max(s.CurrentIndex-1, 0)
	if prev == s.CurrentIndex {
		return s
	}
	s = s.clone()
	s.CurrentIndex = prev
	return s
}

// Finish scores the current answers and clears any earlier feedback.
func Finish(s State) State {
	s = s.clone()
	s.Summary = ComputeSummary(s.Questions, s.Answers)
	s.Feedback = ""
	return s
}

// ApplyFeedback stores generated feedback, or the fallback when text is
// empty.
func ApplyFeedback(s State, text string) State {
	s = s.clone()
	if strings.TrimSpace(text) == "" {
		text = FeedbackFallback
	}
	s.Feedback = text
	return s
}

// ResetForNewTest drops the quiz but keeps the learner and quiz settings.
func ResetForNewTest(s State) State {
	s = clearQuiz(s.clone())
	s.IsLoading = false
	s.LastError = ""
	return s
}

// FeedbackRequest builds the feedback input for a finished quiz.
func FeedbackRequest(s State) quizgen.FeedbackInput {
	name := s.UserName
	if name == "" {
		name = DefaultLearnerName
	}
	return quizgen.FeedbackInput{
		Name:    name,
		Subject: s.Subject,
		Score:   s.Summary.Correct,
		Total:   len(s.Questions),
	}
}

func clearQuiz(s State) State {
	s.Questions = nil
	s.Answers = map[string]string{}
	s.Status = map[string]QuestionStatus{}
	s.CurrentIndex = 0
	s.Summary = Summary{}
	s.Feedback = ""
	return s
}

// visit promotes a question on its first visit. Any other status is kept.
func visit(s *State, index int) {
	id := s.Questions[index].ID
	if st, ok := s.Status[id]; !ok || st == StatusNotVisited {
		s.Status[id] = StatusNotAnswered
	}
}
