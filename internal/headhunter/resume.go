package headhunter

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type Resumes struct {
	Items []*Resume
}

type Resume struct {
	Title string
	ID    string `json:"id,omitempty"`
}

// ResumeNotFoundError is returned when no resume carries the requested title.
type ResumeNotFoundError struct {
	Title     string
	Available []string
}

func (e *ResumeNotFoundError) Error() string {
	return fmt.Sprintf("resume %q not found, available: %s", e.Title, strings.Join(e.Available, ", "))
}

type ResumeDetails struct {
	ID    string
	Title string
	Body  ResumeBody
	Raw   map[string]any
}

// ResumeBody holds the resume fields that describe the candidate's skills.
type ResumeBody struct {
	FirstName  string       `mapstructure:"first_name"`
	LastName   string       `mapstructure:"last_name"`
	Skills     string       `mapstructure:"skills"`
	SkillSet   []string     `mapstructure:"skill_set"`
	Experience []Experience `mapstructure:"experience"`
}

type Experience struct {
	Company     string `mapstructure:"company"`
	Position    string `mapstructure:"position"`
	Description string `mapstructure:"description"`
}

func (c *Client) getResumes(id string) (*Resumes, error) {
	apiURLMineResumes := fmt.Sprintf("%s/resumes/%s", c.APIURL, id)

	items, err := c.GetItems(apiURLMineResumes, nil)
	if err != nil {
		return nil, err
	}

	var resumes []*Resume
	if err = mapstructure.Decode(items, &resumes); err != nil {
		return nil, err
	}

	return &Resumes{
		Items: resumes,
	}, nil
}

func (r *Resumes) Len() int {
	return len(r.Items)
}

func (r *Resumes) Titles() []string {
	ids := make([]string, 0, len(r.Items))

	for _, v := range r.Items {
		ids = append(ids, v.Title)
	}

	return ids
}

func (r *Resumes) FindByTitle(title string) *Resume {
	for _, resume := range r.Items {
		if resume.Title == title {
			return resume
		}
	}

	return nil
}

func (c *Client) GetResumeDetails(id string) (*ResumeDetails, error) {
	if id == "" {
		return nil, fmt.Errorf("resume id is required")
	}

	apiURL := fmt.Sprintf("%s/resumes/%s", c.APIURL, id)

	var raw map[string]any
	if err := c.getJSON(apiURL, nil, &raw); err != nil {
		return nil, err
	}

	if raw == nil {
		raw = make(map[string]any)
	}

	var body ResumeBody
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &body,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode resume %s: %w", id, err)
	}

	return &ResumeDetails{
		ID:    valueAsString(raw["id"]),
		Title: valueAsString(raw["title"]),
		Body:  body,
		Raw:   raw,
	}, nil
}

// CandidateName joins the first and last name from the resume.
func (d *ResumeDetails) CandidateName() string {
	return strings.TrimSpace(d.Body.FirstName + " " + d.Body.LastName)
}

// Text flattens the resume into plain text: title, skill set, about section and work experience.
func (d *ResumeDetails) Text() string {
	var parts []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	add(d.Title)
	add(strings.Join(d.Body.SkillSet, ", "))
	add(d.Body.Skills)
	for _, e := range d.Body.Experience {
		add(strings.TrimSpace(e.Position + " " + e.Company))
		add(e.Description)
	}

	return strings.Join(parts, "\n")
}

func valueAsString(v any) string {
	if v == nil {
		return ""
	}

	switch typed := v.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
