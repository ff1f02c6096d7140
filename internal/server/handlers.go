package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/interview"
	"github.com/spigell/hh-interviewer/internal/logger"
)

const (
	maxBodyBytes = 1 << 20

	msgRunning         = "AI Excel Interviewer API is running."
	msgSessionNotFound = "Session not found."
)

type submitRequest struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"detail": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"detail": message})
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"message": msgRunning})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req interview.StartRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := s.service.StartInterview(r.Context(), req)
	if err != nil {
		s.logger.Error("failed to start interview", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to start interview")
		return
	}

	JSON(w, http.StatusOK, res)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		Error(w, http.StatusUnprocessableEntity, "session_id is required")
		return
	}

	res, err := s.service.SubmitAnswer(r.Context(), req.SessionID, req.Answer)
	if err != nil {
		s.writeServiceError(w, req.SessionID, err)
		return
	}

	JSON(w, http.StatusOK, res)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	report, err := s.service.Report(sessionID)
	if err != nil {
		s.writeServiceError(w, sessionID, err)
		return
	}

	JSON(w, http.StatusOK, report)
}

func (s *Server) writeServiceError(w http.ResponseWriter, sessionID string, err error) {
	if errors.Is(err, interview.ErrSessionNotFound) {
		Error(w, http.StatusNotFound, msgSessionNotFound)
		return
	}

	s.logger.Error("interview operation failed", append(logger.QuestionFields(sessionID, 0), zap.Error(err))...)
	Error(w, http.StatusInternalServerError, "internal error")
}

func decode(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}
