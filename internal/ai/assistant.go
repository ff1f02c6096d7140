// Package ai describes the language-model collaborators the interviewer talks to.
// Implementations live in provider subpackages.
package ai

import "context"

// QuestionRequest asks a provider for interview questions tailored to a resume.
type QuestionRequest struct {
	Subject       string
	ResumeText    string
	Role          string
	Level         string
	MatchedSkills []string
	MaxQuestions  int
}

// QuestionDraft is a question item exactly as the provider returned it.
// Drafts are validated and converted by the interview package.
type QuestionDraft struct {
	Type          string       `json:"type"`
	Text          string       `json:"text"`
	Skill         string       `json:"skill"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	Rubric        *RubricDraft `json:"rubric,omitempty"`
}

// RubricDraft is the rubric part of a QuestionDraft.
type RubricDraft struct {
	Criteria []string  `json:"criteria"`
	Weights  []float64 `json:"weights"`
	Exemplar string    `json:"exemplar,omitempty"`
}

// GradeRequest asks a provider to grade an open answer against a rubric.
type GradeRequest struct {
	Question string
	Criteria []string
	Weights  []float64
	Exemplar string
	Answer   string
}

// Grade is a provider's rubric assessment of one answer.
// Confidence is nil when the provider did not report one.
type Grade struct {
	Scores     []float64
	Total      float64
	Comments   string
	Confidence *float64
	Raw        string
}

// QuestionGenerator synthesizes interview questions.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, req QuestionRequest) ([]QuestionDraft, error)
}

// Grader grades open-ended answers against a rubric.
type Grader interface {
	GradeAnswer(ctx context.Context, req GradeRequest) (*Grade, error)
}
