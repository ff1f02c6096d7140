package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/interview"
	"github.com/spigell/hh-interviewer/internal/skills"
	"github.com/spigell/hh-interviewer/internal/utils"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Show the skills found in a resume and whether they pass the interview gate",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		logger, config := setup()

		resume, err := loadResume(ctx, cmd, config, logger)
		if err != nil {
			logger.Fatal("loading resume", zap.Error(err))
		}

		if unreachable := skills.Unreachable(config.Interview.RequiredSkills); len(unreachable) > 0 {
			logger.Warn("required skills cannot be matched from resume text", zap.Strings("skills", unreachable))
		}

		printSkillReport(cmd.OutOrStdout(), resume.Text, *config.Interview)
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)
	addResumeFlags(skillsCmd)
}

func printSkillReport(out io.Writer, resume string, settings interview.Settings) {
	found := skills.Extract(resume)
	overlap := skills.ScoreOverlap(found, settings.RequiredSkills, settings.OverlapTopN)

	verdict := "PASS"
	if overlap.Score < settings.SkillMatchThreshold {
		verdict = "BLOCKED"
	}

	fmt.Fprintf(out, "Skills found: %s\n", joinOrNone(found))
	fmt.Fprintf(out, "Required skills matched: %s\n", joinOrNone(overlap.Matched))
	fmt.Fprintf(out, "Overlap: %d, score %s/10 (gate %s): %s\n",
		overlap.Count, utils.FormatScore(overlap.Score), utils.FormatScore(settings.SkillMatchThreshold), verdict)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
