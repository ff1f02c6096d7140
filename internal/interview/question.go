package interview

import (
	"strings"

	"github.com/spigell/hh-interviewer/internal/ai"
)

// Type names the answer format of a question.
type Type string

const (
	TypeMultipleChoice Type = "multiple_choice"
	TypeOpenEnded      Type = "open_ended"
)

// generalSkill tags questions the provider left without a skill.
const generalSkill = "general"

// Format is the type-specific part of a Question: *MultipleChoice or *OpenEnded.
type Format interface {
	Type() Type
	isFormat()
}

// MultipleChoice questions are graded by comparing the first letter of the answer.
type MultipleChoice struct {
	Options       []string
	CorrectAnswer string
}

func (*MultipleChoice) Type() Type { return TypeMultipleChoice }
func (*MultipleChoice) isFormat()  {}

// OpenEnded questions are graded by the rubric grader.
type OpenEnded struct {
	Rubric Rubric
}

func (*OpenEnded) Type() Type { return TypeOpenEnded }
func (*OpenEnded) isFormat()  {}

// Rubric lists the grading criteria of an open-ended question with their weights.
type Rubric struct {
	Criteria []string
	Weights  []float64
	Exemplar string
}

// DefaultRubric is attached to open-ended questions that arrive without one.
func DefaultRubric() Rubric {
	return Rubric{
		Criteria: []string{"correctness", "clarity", "best_practices"},
		Weights:  []float64{0.5, 0.3, 0.2},
	}
}

// Question is one interview item. IDs are 1-based and contiguous within a session.
type Question struct {
	ID     int
	Text   string
	Skill  string
	Format Format
}

// Type returns the format type of the question.
func (q Question) Type() Type {
	if q.Format == nil {
		return TypeOpenEnded
	}
	return q.Format.Type()
}

// QuestionView is the candidate-facing form of a question. It never carries the correct answer.
type QuestionView struct {
	ID       int      `json:"id"`
	Type     Type     `json:"type"`
	Text     string   `json:"text"`
	Skill    string   `json:"skill"`
	Options  []string `json:"options,omitempty"`
	Criteria []string `json:"criteria,omitempty"`
}

// View renders the question for the candidate.
func (q Question) View() QuestionView {
	v := QuestionView{
		ID:    q.ID,
		Type:  q.Type(),
		Text:  q.Text,
		Skill: q.Skill,
	}

	switch f := q.Format.(type) {
	case *MultipleChoice:
		v.Options = append([]string(nil), f.Options...)
	case *OpenEnded:
		v.Criteria = append([]string(nil), f.Rubric.Criteria...)
	}

	return v
}

// buildQuestions converts provider drafts into questions. Drafts without text are dropped,
// ids are assigned over the kept drafts and the result is capped at limit.
func buildQuestions(drafts []ai.QuestionDraft, limit int) []Question {
	questions := make([]Question, 0, len(drafts))

	for _, d := range drafts {
		if limit > 0 && len(questions) >= limit {
			break
		}

		text := strings.TrimSpace(d.Text)
		if text == "" {
			continue
		}

		skill := strings.TrimSpace(d.Skill)
		if skill == "" {
			skill = generalSkill
		}

		q := Question{
			ID:    len(questions) + 1,
			Text:  text,
			Skill: skill,
		}

		if Type(strings.TrimSpace(d.Type)) == TypeMultipleChoice {
			q.Format = &MultipleChoice{
				Options:       append([]string(nil), d.Options...),
				CorrectAnswer: strings.TrimSpace(d.CorrectAnswer),
			}
		} else {
			q.Format = &OpenEnded{Rubric: rubricFromDraft(d.Rubric)}
		}

		questions = append(questions, q)
	}

	return questions
}

func rubricFromDraft(d *ai.RubricDraft) Rubric {
	if d == nil || len(d.Criteria) == 0 {
		return DefaultRubric()
	}

	return Rubric{
		Criteria: append([]string(nil), d.Criteria...),
		Weights:  append([]float64(nil), d.Weights...),
		Exemplar: d.Exemplar,
	}
}
