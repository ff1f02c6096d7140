package skills

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var requiredSkills = []string{
	"excel", "formulas", "functions", "pivot tables", "charts",
	"data cleaning", "power query", "lookup", "index-match",
	"dynamic arrays", "vba", "macros", "goal seek", "solver",
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "sum  a1 b2  / c-d + e.f", Normalize("SUM(A1,B2) / C-D + E.F"))
	require.Equal(t, "excel ", Normalize("Excel™"))
}

func TestExtractCanonicalizesSynonyms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		resume string
		expect []string
	}{
		{
			name:   "lookup family",
			resume: "Daily XLOOKUP and index match work",
			expect: []string{"lookup"},
		},
		{
			name:   "powerpivot also mentions pivot",
			resume: "Built PowerPivot models",
			expect: []string{"pivot tables", "power query"},
		},
		{
			name:   "microsoft excel folds into excel",
			resume: "Microsoft Excel power user",
			expect: []string{"excel"},
		},
		{
			name:   "punctuation is stripped",
			resume: "Skills: Goal-Seek? no; goal seek, (Solver)!",
			expect: []string{"goal seek", "solver"},
		},
		{
			name:   "nothing known",
			resume: "Carpenter with twenty years of woodworking",
			expect: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expect, Extract(tc.resume))
		})
	}
}

func TestExtractIsOrderInsensitive(t *testing.T) {
	a := Extract("VBA, charts, Excel")
	b := Extract("excel charts vba vba")
	require.Equal(t, a, b)
	require.Equal(t, []string{"charts", "excel", "vba"}, a)
}

func TestScoreOverlapEightOfTen(t *testing.T) {
	resume := "Excel, VLOOKUP, pivot tables, Power Query, charts, VBA, macros, Solver"

	overlap := ScoreOverlap(Extract(resume), requiredSkills, DefaultTopN)

	require.Equal(t, 8, overlap.Count)
	require.Equal(t, 8.0, overlap.Score)
	require.ElementsMatch(t, []string{
		"excel", "lookup", "pivot tables", "power query", "charts", "vba", "macros", "solver",
	}, overlap.Matched)
}

func TestScoreOverlapNoSkills(t *testing.T) {
	overlap := ScoreOverlap(Extract("I like gardening"), requiredSkills, DefaultTopN)

	require.Zero(t, overlap.Count)
	require.Zero(t, overlap.Score)
	require.Empty(t, overlap.Matched)
}

func TestScoreOverlapSmallRequiredList(t *testing.T) {
	overlap := ScoreOverlap([]string{"Excel", "VBA"}, []string{"excel", "vba", "solver"}, 10)

	require.Equal(t, 2, overlap.Count)
	require.Equal(t, 6.67, overlap.Score)
}

func TestScoreOverlapEmptyRequired(t *testing.T) {
	overlap := ScoreOverlap([]string{"excel"}, nil, 0)
	require.Zero(t, overlap.Score)
}

func TestUnreachable(t *testing.T) {
	require.Equal(t, []string{"formulas", "functions", "index-match"}, Unreachable(requiredSkills))
	require.Empty(t, Unreachable([]string{"excel", "lookup"}))
}

func TestMicrosoftExcelCountsOnce(t *testing.T) {
	tags := Extract("Microsoft Excel and Excel dashboards")
	require.NotContains(t, tags, "microsoft excel")

	overlap := ScoreOverlap(tags, requiredSkills, DefaultTopN)
	require.Equal(t, 1, overlap.Count)
	require.Equal(t, []string{"excel"}, overlap.Matched)
}
