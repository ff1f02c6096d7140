package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/headhunter"
	"github.com/spigell/hh-interviewer/internal/secrets"
)

const (
	flagResumeFile  = "resume-file"
	flagResumeTitle = "resume-title"
)

type resumeInput struct {
	Text string
	// Name is the candidate name found in the resume, if any.
	Name string
}

func addResumeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagResumeFile, "r", "", "read the resume from a file ('-' for stdin)")
	cmd.Flags().StringP(flagResumeTitle, "t", "", "fetch the resume with this title from hh.ru")
}

// loadResume reads the resume from a file, stdin or hh.ru, depending on the flags.
func loadResume(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (*resumeInput, error) {
	file, _ := cmd.Flags().GetString(flagResumeFile)
	title, _ := cmd.Flags().GetString(flagResumeTitle)

	switch {
	case file != "" && title != "":
		return nil, fmt.Errorf("--%s and --%s are mutually exclusive", flagResumeFile, flagResumeTitle)
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading resume from stdin: %w", err)
		}
		return &resumeInput{Text: string(data)}, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading resume: %w", err)
		}
		return &resumeInput{Text: string(data)}, nil
	case title != "":
		return resumeFromHeadhunter(ctx, config.Headhunter, title, logger)
	default:
		return nil, fmt.Errorf("a resume is required: use --%s or --%s", flagResumeFile, flagResumeTitle)
	}
}

func resumeFromHeadhunter(ctx context.Context, config *HeadhunterConfig, title string, logger *zap.Logger) (*resumeInput, error) {
	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		return nil, errors.New("headhunter token file is not configured (set HH_TOKEN_FILE or headhunter.token-file)")
	}

	token, err := secrets.Load(secrets.Source{
		Name: "headhunter token",
		File: tokenFile,
	})
	if err != nil {
		return nil, err
	}

	hh := headhunter.New(ctx, logger, token)
	if config.UserAgent != "" {
		hh.UserAgent = config.UserAgent
	}

	details, err := hh.ResumeText(title)
	if err != nil {
		return nil, fmt.Errorf("getting resume from hh.ru: %w", err)
	}

	logger.Info("resume loaded from hh.ru", zap.String("title", details.Title), zap.String("id", details.ID))

	return &resumeInput{Text: details.Text(), Name: details.CandidateName()}, nil
}
