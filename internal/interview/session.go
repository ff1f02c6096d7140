package interview

import (
	"sync"
	"time"

	"github.com/spigell/hh-interviewer/internal/skills"
)

// State is the lifecycle phase of a session.
type State string

const (
	StateBlocked   State = "blocked"
	StateActive    State = "active"
	StateCompleted State = "completed"
)

// Answer is the graded record of one submission.
type Answer struct {
	QuestionID     int      `json:"question_id"`
	Type           Type     `json:"type"`
	Skill          string   `json:"skill"`
	Text           string   `json:"answer"`
	Correct        bool     `json:"is_correct"`
	Score          float64  `json:"score"`
	Feedback       string   `json:"feedback"`
	Confidence     float64  `json:"confidence"`
	CheatingDelta  float64  `json:"cheating_delta"`
	TimedOut       bool     `json:"timed_out"`
	Signals        []string `json:"signals,omitempty"`
	GraderFallback bool     `json:"grader_fallback,omitempty"`
}

// Record is the accumulated interview history the evaluation is computed from.
type Record struct {
	Answers         []Answer
	Observations    []string
	CheatingSignals []float64
}

// Session is the state of one interview. Fields are guarded by mu once the
// session is in a Store.
type Session struct {
	mu sync.Mutex

	ID            string
	CandidateName string
	Role          string
	Level         string
	ResumeText    string
	ResumeSkills  []string
	Overlap       skills.Overlap
	Greeting      string
	Blocked       bool
	BlockReason   string

	Questions         []Question
	QuestionsFallback bool
	// Current indexes Questions; len(Questions) means the interview is over.
	Current           int
	QuestionStartedAt time.Time

	Record
}

// State derives the lifecycle phase from the session fields.
func (s *Session) State() State {
	switch {
	case s.Blocked:
		return StateBlocked
	case s.Current >= len(s.Questions):
		return StateCompleted
	default:
		return StateActive
	}
}

// currentQuestion returns the question awaiting an answer.
func (s *Session) currentQuestion() (Question, bool) {
	if s.Blocked || s.Current < 0 || s.Current >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Current], true
}

// record appends a graded answer and moves to the next question.
func (s *Session) record(a Answer, observation string, now time.Time) {
	s.Answers = append(s.Answers, a)
	s.CheatingSignals = append(s.CheatingSignals, a.CheatingDelta)
	if observation != "" {
		s.Observations = append(s.Observations, observation)
	}

	s.Current++
	if s.Current < len(s.Questions) {
		s.QuestionStartedAt = now
	} else {
		s.QuestionStartedAt = time.Time{}
	}
}
