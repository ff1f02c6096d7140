// Package skills maps free-text resumes to canonical skill tags and scores them
// against the list of skills an interviewer requires.
package skills

import (
	"regexp"
	"sort"
	"strings"
)

var disallowed = regexp.MustCompile(`[^a-z0-9\s\-+./]`)

type synonym struct {
	term string
	tag  string
}

// dictionary is scanned in order. Terms are matched as substrings of the
// normalized resume, so "pivot" also fires on "pivot tables".
var dictionary = []synonym{
	{term: "excel", tag: "excel"},
	{term: "microsoft excel", tag: "excel"},
	{term: "vlookup", tag: "lookup"},
	{term: "xlookup", tag: "lookup"},
	{term: "index match", tag: "lookup"},
	{term: "index-match", tag: "lookup"},
	{term: "pivot", tag: "pivot tables"},
	{term: "pivot table", tag: "pivot tables"},
	{term: "pivot tables", tag: "pivot tables"},
	{term: "power query", tag: "power query"},
	{term: "powerpivot", tag: "power query"},
	{term: "power pivot", tag: "power query"},
	{term: "charts", tag: "charts"},
	{term: "charting", tag: "charting"},
	{term: "dashboards", tag: "dashboards"},
	{term: "macros", tag: "macros"},
	{term: "vba", tag: "vba"},
	{term: "solver", tag: "solver"},
	{term: "goal seek", tag: "goal seek"},
	{term: "dynamic arrays", tag: "dynamic arrays"},
	{term: "filter", tag: "filter"},
	{term: "unique", tag: "unique"},
	{term: "sort", tag: "sort"},
	{term: "sumifs", tag: "sumifs"},
	{term: "countifs", tag: "countifs"},
	{term: "iferror", tag: "iferror"},
	{term: "data cleaning", tag: "data cleaning"},
	{term: "data validation", tag: "data validation"},
	{term: "conditional formatting", tag: "conditional formatting"},
	{term: "what-if analysis", tag: "what-if analysis"},
}

// Normalize lowercases text and blanks out every character outside
// [a-z0-9], whitespace, '-', '+', '.' and '/'.
func Normalize(text string) string {
	return disallowed.ReplaceAllString(strings.ToLower(text), " ")
}

// Extract returns the sorted, deduplicated canonical skill tags mentioned in the resume.
func Extract(resume string) []string {
	text := Normalize(resume)

	detected := make(map[string]struct{})
	for _, s := range dictionary {
		if strings.Contains(text, Normalize(s.term)) {
			detected[s.tag] = struct{}{}
		}
	}

	return sortedKeys(detected)
}

// Unreachable returns the required skills that Extract can never produce.
// Such skills can never count towards the overlap score.
func Unreachable(required []string) []string {
	tags := make(map[string]struct{}, len(dictionary))
	for _, s := range dictionary {
		tags[s.tag] = struct{}{}
	}

	missing := make(map[string]struct{})
	for _, r := range required {
		key := strings.TrimSpace(Normalize(r))
		if _, ok := tags[key]; !ok && key != "" {
			missing[key] = struct{}{}
		}
	}

	return sortedKeys(missing)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
