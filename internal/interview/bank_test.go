package interview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	bank := DefaultBank()
	require.Equal(t, 2, bank.Len())

	questions := bank.Questions(10)
	require.Len(t, questions, 2)

	mc, ok := questions[0].Format.(*MultipleChoice)
	require.True(t, ok)
	require.Equal(t, 1, questions[0].ID)
	require.Equal(t, "lookup", questions[0].Skill)
	require.Equal(t, "C", mc.CorrectAnswer)
	require.Len(t, mc.Options, 4)

	oe, ok := questions[1].Format.(*OpenEnded)
	require.True(t, ok)
	require.Equal(t, 2, questions[1].ID)
	require.Equal(t, "pivot tables", questions[1].Skill)
	require.Equal(t, []string{"data_selection", "insert_pivot", "field_assignment"}, oe.Rubric.Criteria)
	require.Equal(t, []float64{0.3, 0.3, 0.4}, oe.Rubric.Weights)
}

func TestBankQuestionsLimit(t *testing.T) {
	questions := DefaultBank().Questions(1)
	require.Len(t, questions, 1)
	require.Equal(t, TypeMultipleChoice, questions[0].Type())
}

func TestParseBankRejectsEmpty(t *testing.T) {
	_, err := ParseBank([]byte("questions: []"))
	require.Error(t, err)

	_, err = ParseBank([]byte("questions:\n  - type: open_ended\n    text: ''\n"))
	require.Error(t, err)

	_, err = ParseBank([]byte("questions: [unterminated"))
	require.Error(t, err)
}

func TestLoadBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	content := "questions:\n  - type: open_ended\n    text: Explain SUMIFS.\n    skill: formulas\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	bank, err := LoadBank(path)
	require.NoError(t, err)
	require.Equal(t, 1, bank.Len())

	q := bank.Questions(0)[0]
	require.Equal(t, "formulas", q.Skill)
	require.Equal(t, DefaultRubric(), q.Format.(*OpenEnded).Rubric)

	_, err = LoadBank(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bank, err = LoadBank("")
	require.NoError(t, err)
	require.Equal(t, 2, bank.Len())
}
