// Package interview runs skill-gated interviews: it gates a candidate on resume
// skill overlap, walks them through a bounded question sequence, grades each
// answer and folds the results into a pass/fail evaluation.
package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/ai"
	"github.com/spigell/hh-interviewer/internal/logger"
	"github.com/spigell/hh-interviewer/internal/signals"
	"github.com/spigell/hh-interviewer/internal/skills"
)

const (
	defaultRole  = "Analyst"
	defaultLevel = "Intermediate"

	idAttempts = 3
)

// Deps are the collaborators of a Service. Nil Questions or Grader make the
// service fall back to the question bank and the neutral grade.
type Deps struct {
	Store     *Store
	Bank      *Bank
	Questions ai.QuestionGenerator
	Grader    ai.Grader
	Logger    *zap.Logger
}

// Service implements the interview operations over a Store.
type Service struct {
	settings  Settings
	store     *Store
	bank      *Bank
	questions ai.QuestionGenerator
	grader    ai.Grader
	detector  *signals.Detector
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

// StartRequest opens an interview.
type StartRequest struct {
	CandidateName string `json:"candidate_name"`
	ResumeText    string `json:"resume_text"`
	Role          string `json:"role"`
	Level         string `json:"level"`
}

// StartResult is returned by StartInterview. Question is nil for blocked sessions.
type StartResult struct {
	SessionID    string         `json:"session_id"`
	Greeting     string         `json:"greeting"`
	Blocked      bool           `json:"blocked"`
	Reason       string         `json:"reason,omitempty"`
	Overlap      skills.Overlap `json:"skill_overlap"`
	Question     *QuestionView  `json:"question,omitempty"`
	TimeLimitSec int            `json:"time_limit_sec,omitempty"`
}

// SubmitResult is returned by SubmitAnswer. Summary is set once the session is terminal.
type SubmitResult struct {
	Feedback     string        `json:"feedback"`
	NextQuestion *QuestionView `json:"next_question,omitempty"`
	TimeLimitSec int           `json:"time_limit_sec,omitempty"`
	Summary      string        `json:"summary,omitempty"`
	Completed    bool          `json:"completed"`
}

// Report is a read-only view of a session's progress and evaluation.
type Report struct {
	SessionID  string     `json:"session_id"`
	State      State      `json:"state"`
	Answered   int        `json:"answered"`
	Total      int        `json:"total"`
	Answers    []Answer   `json:"answers"`
	Evaluation Evaluation `json:"evaluation"`
	Summary    string     `json:"summary"`
}

// NewService validates settings and wires the collaborators.
func NewService(settings Settings, deps Deps) (*Service, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid interview settings: %w", err)
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	store := deps.Store
	if store == nil {
		store = NewStore()
	}

	bank := deps.Bank
	if bank == nil {
		var err error
		bank, err = LoadBank(settings.FallbackBankFile)
		if err != nil {
			return nil, err
		}
	}

	if unreachable := skills.Unreachable(settings.RequiredSkills); len(unreachable) > 0 {
		log.Warn("required skills cannot be matched from resume text",
			zap.Strings("skills", unreachable))
	}

	detector := signals.New(settings.Cheating)
	log.Debug("interview service ready",
		zap.Int("fallback_questions", bank.Len()),
		zap.Strings("cheating_rules", detector.Rules()),
	)

	return &Service{
		settings:  settings,
		store:     store,
		bank:      bank,
		questions: deps.Questions,
		grader:    deps.Grader,
		detector:  detector,
		logger:    log,
		now:       time.Now,
		newID:     uuid.NewString,
	}, nil
}

// Settings returns the settings the service runs with.
func (s *Service) Settings() Settings {
	return s.settings
}

// StartInterview gates the candidate on resume skills and opens a session.
func (s *Service) StartInterview(ctx context.Context, req StartRequest) (StartResult, error) {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = defaultRole
	}
	level := strings.TrimSpace(req.Level)
	if level == "" {
		level = defaultLevel
	}

	resumeSkills := skills.Extract(req.ResumeText)
	overlap := skills.ScoreOverlap(resumeSkills, s.settings.RequiredSkills, s.settings.OverlapTopN)

	sess := &Session{
		CandidateName: strings.TrimSpace(req.CandidateName),
		Role:          role,
		Level:         level,
		ResumeText:    req.ResumeText,
		ResumeSkills:  resumeSkills,
		Overlap:       overlap,
	}

	var set QuestionSet
	if overlap.Score < s.settings.SkillMatchThreshold {
		sess.Blocked = true
		sess.Current = -1
		sess.BlockReason = fmt.Sprintf("Insufficient skill overlap for %s. Matched %d skills; need >= %d out of 10.",
			role, overlap.Count, int(s.settings.SkillMatchThreshold))
		sess.Greeting = fmt.Sprintf("Hello %s, thanks for sharing the resume. %s", sess.CandidateName, sess.BlockReason)
	} else {
		set = s.questionSet(ctx, ai.QuestionRequest{
			Subject:       s.settings.Subject,
			ResumeText:    req.ResumeText,
			Role:          role,
			Level:         level,
			MatchedSkills: overlap.Matched,
			MaxQuestions:  s.settings.MaxQuestions,
		})
		sess.Questions = set.Questions
		sess.QuestionsFallback = set.Fallback
		sess.Greeting = fmt.Sprintf("Hello %s! This is an %s interview for the %s role (%s). "+
			"You'll answer up to %d questions tailored to the resume. Each question has a %d minute time limit.",
			sess.CandidateName, s.settings.Subject, role, level, len(set.Questions),
			int(s.settings.QuestionTimeLimit/time.Minute))
		sess.QuestionStartedAt = s.now()
	}

	if err := s.register(sess); err != nil {
		return StartResult{}, err
	}

	if set.Fallback {
		s.logQuestionFallback(sess.ID, set)
	}

	s.logger.Info("interview started",
		zap.String(logger.FieldSession, sess.ID),
		zap.String("role", role),
		zap.String("level", level),
		zap.Int("overlap", overlap.Count),
		zap.Float64("overlap_score", overlap.Score),
		zap.Bool("blocked", sess.Blocked),
		zap.Int("questions", len(sess.Questions)),
		zap.Int("sessions", s.store.Len()),
	)

	res := StartResult{
		SessionID: sess.ID,
		Greeting:  sess.Greeting,
		Blocked:   sess.Blocked,
		Reason:    sess.BlockReason,
		Overlap:   overlap,
	}
	if q, ok := sess.currentQuestion(); ok {
		view := q.View()
		res.Question = &view
		res.TimeLimitSec = s.settings.TimeLimitSeconds()
	}

	return res, nil
}

// register assigns a fresh id and stores the session.
func (s *Service) register(sess *Session) error {
	for range idAttempts {
		sess.ID = s.newID()
		err := s.store.Create(sess)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrSessionExists) {
			return err
		}
		s.logger.Warn("session id collision, retrying", zap.String(logger.FieldSession, sess.ID))
	}

	return fmt.Errorf("allocate session id: %w", ErrSessionExists)
}

// SubmitAnswer grades the answer to the current question and advances the session.
// Submissions to blocked or completed sessions return the final summary unchanged.
// Submissions to the same session are serialized, including the grader call.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, answer string) (SubmitResult, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return SubmitResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Blocked {
		return SubmitResult{
			Feedback:  feedbackGated,
			Summary:   s.summary(sess),
			Completed: true,
		}, nil
	}

	q, ok := sess.currentQuestion()
	if !ok {
		return SubmitResult{
			Feedback:  feedbackFinished,
			Summary:   s.summary(sess),
			Completed: true,
		}, nil
	}

	now := s.now()
	timedOut := !sess.QuestionStartedAt.IsZero() && now.Sub(sess.QuestionStartedAt) > s.settings.QuestionTimeLimit

	graded, observation := s.grade(ctx, sess.ID, q, strings.TrimSpace(answer), timedOut)
	sess.record(graded, observation, now)

	s.logger.Debug("answer recorded",
		append(logger.QuestionFields(sess.ID, q.ID),
			zap.Float64("score", graded.Score),
			zap.Bool("timed_out", graded.TimedOut),
			zap.Float64("cheating_delta", graded.CheatingDelta),
			zap.Strings("signals", graded.Signals),
		)...)

	res := SubmitResult{Feedback: graded.Feedback}

	if next, ok := sess.currentQuestion(); ok {
		view := next.View()
		res.NextQuestion = &view
		res.TimeLimitSec = s.settings.TimeLimitSeconds()
		return res, nil
	}

	ev := Evaluate(sess.Record, s.settings)
	s.logger.Info("interview completed",
		zap.String(logger.FieldSession, sess.ID),
		zap.Bool("passed", ev.Passed),
		zap.Float64("required_skills", ev.RequiredSkillScore),
		zap.Float64("soft_skills", ev.SoftSkillScore),
		zap.Float64("confidence", ev.ConfidenceScore),
		zap.Float64("cheating", ev.CheatingScore),
	)

	res.Summary = Summary(summaryInput(sess), ev)
	res.Completed = true

	return res, nil
}

// Report evaluates a session in its current state. Sessions need not be terminal.
func (s *Service) Report(sessionID string) (Report, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return Report{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return Report{
		SessionID:  sess.ID,
		State:      sess.State(),
		Answered:   len(sess.Answers),
		Total:      len(sess.Questions),
		Answers:    append([]Answer(nil), sess.Answers...),
		Evaluation: Evaluate(sess.Record, s.settings),
		Summary:    s.summary(sess),
	}, nil
}

func (s *Service) summary(sess *Session) string {
	return Summary(summaryInput(sess), Evaluate(sess.Record, s.settings))
}
