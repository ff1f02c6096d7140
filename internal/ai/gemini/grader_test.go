package gemini

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/ai"
)

func TestRubricGraderGradeAnswer(t *testing.T) {
	stub := &stubGenerator{response: `{"scores":[1, 0.5, "0.25"],"total":0.72,"comments":"Solid steps.","confidence":0.9}`}
	grader := NewRubricGrader(stub, 0, zap.NewNop())

	grade, err := grader.GradeAnswer(context.Background(), ai.GradeRequest{
		Question: "Describe a pivot table.",
		Criteria: []string{"data_selection", "insert_pivot", "field_assignment"},
		Weights:  []float64{0.3, 0.3, 0.4},
		Answer:   "Select data. Insert pivot. Drag fields.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if grade.Total != 0.72 {
		t.Fatalf("unexpected total: %v", grade.Total)
	}
	if len(grade.Scores) != 3 || grade.Scores[2] != 0.25 {
		t.Fatalf("unexpected scores: %v", grade.Scores)
	}
	if grade.Confidence == nil || *grade.Confidence != 0.9 {
		t.Fatalf("unexpected confidence: %v", grade.Confidence)
	}
	if grade.Comments != "Solid steps." {
		t.Fatalf("unexpected comments: %q", grade.Comments)
	}
	if grade.Raw == "" {
		t.Fatal("expected raw response to be kept")
	}

	if stub.lastSystem != gradingPrompt {
		t.Fatal("expected grading prompt as system instruction")
	}
	if !strings.Contains(stub.lastMessage, "Rubric criteria: data_selection, insert_pivot, field_assignment") {
		t.Fatalf("unexpected message: %s", stub.lastMessage)
	}
	if !strings.Contains(stub.lastMessage, "Candidate answer: Select data. Insert pivot. Drag fields.") {
		t.Fatalf("unexpected message: %s", stub.lastMessage)
	}
}

func TestParseGradeWithoutConfidence(t *testing.T) {
	grade, err := parseGrade(`{"scores":[0.5],"total":"0.5"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grade.Confidence != nil {
		t.Fatalf("expected nil confidence, got %v", *grade.Confidence)
	}
}

func TestParseGradeRejectsIncompleteResults(t *testing.T) {
	cases := map[string]string{
		"missing total":      `{"scores":[0.5],"comments":"ok"}`,
		"missing scores":     `{"total":0.5}`,
		"scores not list":    `{"scores":"high","total":0.5}`,
		"total not a number": `{"scores":[1],"total":"great"}`,
		"not an object":      `[1,2,3]`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseGrade(raw); err == nil {
				t.Fatalf("expected error for %s", raw)
			}
		})
	}
}
