package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/quizzy/internal/quizgen"
)

// RootMessage is the liveness text served at GET /.
const RootMessage = "AI-Assisted Quiz API is running ✅"

const availableRoutes = "/api/quiz/generate, /api/quiz/feedback, /api/users"

type errResp struct {
	Error string `json:"error"`
}

type generateReq struct {
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Count      int    `json:"count"`
	Difficulty string `json:"difficulty"`
}

type generateResp struct {
	Questions []quizgen.Question `json:"questions"`
}

type feedbackResp struct {
	Feedback string `json:"feedback"`
}

// UserProfile is the body of POST /api/users.
type UserProfile struct {
	Name           string `json:"name"`
	LastSubject    string `json:"lastSubject"`
	LastDifficulty string `json:"lastDifficulty"`
}

type providerTestResp struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	APIKeyConfigured bool   `json:"apiKeyConfigured"`
	Model            string `json:"model"`
}

type notFoundResp struct {
	Error   string `json:"error"`
	Path    string `json:"path"`
	Method  string `json:"method"`
	Message string `json:"message"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, RootMessage)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		writeErr(w, http.StatusBadRequest, "Subject is required")
		return
	}

	cfg := quizgen.QuizConfig{
		Subject:    req.Subject,
		Topic:      req.Topic,
		Count:      req.Count,
		Difficulty: quizgen.Difficulty(req.Difficulty),
	}
	questions, err := s.gen.GenerateQuestions(r.Context(), cfg)
	if err != nil {
		s.logger.Error("quiz generation failed", "subject", req.Subject, "count", req.Count, "err", err)
		status, msg := statusFor(err, "Failed to generate quiz. Please try again later.")
		writeErr(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, generateResp{Questions: questions})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var in quizgen.FeedbackInput
	if !decodeBody(w, r, &in) {
		return
	}

	text, err := s.gen.GenerateFeedback(r.Context(), in)
	if err != nil {
		s.logger.Error("feedback generation failed", "subject", in.Subject, "err", err)
		status, msg := statusFor(err, "Failed to generate feedback. Please try again later.")
		writeErr(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, feedbackResp{Feedback: text})
}

// handleSaveUser validates and echoes the profile. Profiles are not
// stored server-side.
func (s *Server) handleSaveUser(w http.ResponseWriter, r *http.Request) {
	var p UserProfile
	if !decodeBody(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		writeErr(w, http.StatusBadRequest, "Name is required")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProviderTest(w http.ResponseWriter, r *http.Request) {
	ok := s.opts.Provider.APIKeyConfigured
	msg := "❌ API Key is not set in environment variables."
	if ok {
		msg = "✅ API Key is configured and ready to use."
	}
	s.logger.Info("provider check", "configured", ok, "model", s.opts.Provider.Model)

	writeJSON(w, http.StatusOK, providerTestResp{
		Success:          ok,
		Message:          msg,
		APIKeyConfigured: ok,
		Model:            s.opts.Provider.Model,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, notFoundResp{
		Error:   "Route not found",
		Path:    r.URL.Path,
		Method:  r.Method,
		Message: fmt.Sprintf("Cannot %s %s. Available routes: %s", r.Method, r.URL.Path, availableRoutes),
	})
}

// decodeBody decodes a JSON request body into v. An empty body leaves v
// zero. On malformed JSON it writes a 400 and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeErr(w, http.StatusBadRequest, "Invalid JSON body")
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}
