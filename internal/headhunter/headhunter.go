// Package headhunter reads the candidate's resumes from the HeadHunter (hh.ru) API
// so an interview can be started from a published resume.
package headhunter

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL      = "https://api.hh.ru"
	mineResumID = "mine"
	userAgent   = "spigell/hh-interviewer (spigelly@gmail.com)"
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

func (c *Client) GetMineResumes() (*Resumes, error) {
	return c.getResumes(mineResumID)
}

// ResumeText finds the candidate's resume by title and returns its text for skill extraction.
func (c *Client) ResumeText(title string) (*ResumeDetails, error) {
	resumes, err := c.GetMineResumes()
	if err != nil {
		return nil, err
	}

	resume := resumes.FindByTitle(title)
	if resume == nil {
		return nil, &ResumeNotFoundError{Title: title, Available: resumes.Titles()}
	}

	c.logger.Debug("resume found", zap.String("title", resume.Title), zap.String("id", resume.ID))

	return c.GetResumeDetails(resume.ID)
}
