package interview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func passingRecord() Record {
	return Record{
		Answers:         []Answer{{QuestionID: 1, Skill: "lookup", Score: 1, Confidence: 0.8}},
		Observations:    []string{ObservationConcise},
		CheatingSignals: []float64{0},
	}
}

func TestEvaluateEmptyRecord(t *testing.T) {
	ev := Evaluate(Record{}, DefaultSettings())

	require.Zero(t, ev.RequiredSkillScore)
	require.Equal(t, 6.0, ev.SoftSkillScore)
	require.Equal(t, 6.0, ev.ConfidenceScore)
	require.Zero(t, ev.CheatingScore)
	require.False(t, ev.Passed)
	require.False(t, ev.Gates.RequiredSkills)
}

func TestEvaluateRequiredSkillGrouping(t *testing.T) {
	rec := Record{Answers: []Answer{
		{Skill: "lookup", Score: 1},
		{Skill: "lookup", Score: 0},
		{Skill: "Pivot Tables", Score: 1},
		{Skill: "general", Score: 0},
		{Skill: "sumifs", Score: 0},
	}}

	ev := Evaluate(rec, DefaultSettings())
	require.Equal(t, 7.5, ev.RequiredSkillScore)
}

func TestEvaluateScoresExtendedTags(t *testing.T) {
	settings := DefaultSettings()
	settings.RequiredSkills = []string{"excel"}

	ev := Evaluate(Record{Answers: []Answer{{Skill: "dynamic arrays", Score: 0.5}}}, settings)
	require.Equal(t, 5.0, ev.RequiredSkillScore)
}

func TestEvaluateSoftSkills(t *testing.T) {
	rec := Record{Observations: []string{ObservationConcise, ObservationVerbose, ObservationStructured, ObservationBrief, "Other"}}

	ev := Evaluate(rec, DefaultSettings())
	require.Equal(t, 6.0, ev.SoftSkillScore)

	settings := DefaultSettings()
	settings.SoftSkills.WeakPoints = 0
	ev = Evaluate(rec, settings)
	require.Equal(t, 4.0, ev.SoftSkillScore)
}

func TestEvaluateCheatingIsCapped(t *testing.T) {
	rec := passingRecord()
	rec.CheatingSignals = []float64{0.6, 0.6}

	ev := Evaluate(rec, DefaultSettings())
	require.Equal(t, 1.0, ev.CheatingScore)
	require.False(t, ev.Passed)
}

func TestEvaluateIsPure(t *testing.T) {
	rec := passingRecord()
	before := len(rec.Answers)

	first := Evaluate(rec, DefaultSettings())
	second := Evaluate(rec, DefaultSettings())

	require.Equal(t, first, second)
	require.Len(t, rec.Answers, before)
}

func TestEvaluateGates(t *testing.T) {
	require.True(t, Evaluate(passingRecord(), DefaultSettings()).Passed)

	tests := []struct {
		name   string
		mutate func(*Record)
		gate   func(Gates) bool
	}{
		{
			name:   "required skills",
			mutate: func(r *Record) { r.Answers[0].Score = 0.5 },
			gate:   func(g Gates) bool { return g.RequiredSkills },
		},
		{
			name:   "soft skills",
			mutate: func(r *Record) { r.Observations = []string{ObservationBrief, ObservationVerbose} },
			gate:   func(g Gates) bool { return g.SoftSkills },
		},
		{
			name:   "confidence",
			mutate: func(r *Record) { r.Answers[0].Confidence = 0.3 },
			gate:   func(g Gates) bool { return g.Confidence },
		},
		{
			name:   "cheating",
			mutate: func(r *Record) { r.CheatingSignals = []float64{0.5, 0.3} },
			gate:   func(g Gates) bool { return g.Cheating },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := passingRecord()
			tt.mutate(&rec)

			ev := Evaluate(rec, DefaultSettings())
			require.False(t, ev.Passed)
			require.False(t, tt.gate(ev.Gates))

			failing := 0
			for _, ok := range []bool{ev.Gates.RequiredSkills, ev.Gates.SoftSkills, ev.Gates.Confidence, ev.Gates.Cheating} {
				if !ok {
					failing++
				}
			}
			require.Equal(t, 1, failing)
		})
	}
}

func TestEvaluateHonoursOverriddenThresholds(t *testing.T) {
	rec := passingRecord()
	rec.CheatingSignals = []float64{0.8}

	settings := DefaultSettings()
	require.False(t, Evaluate(rec, settings).Passed)

	settings.CheatingThreshold = 0.9
	require.True(t, Evaluate(rec, settings).Passed)
}
