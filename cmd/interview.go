package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/interview"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive interview in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		runInterview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	addResumeFlags(interviewCmd)
	interviewCmd.Flags().StringP("name", "n", "", "candidate name")
	interviewCmd.Flags().String("role", "", "role the candidate applies for (default Analyst)")
	interviewCmd.Flags().String("level", "", "seniority level (default Intermediate)")
}

func runInterview(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	resume, err := loadResume(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("loading resume", zap.Error(err))
	}

	svc, err := newService(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating interview service", zap.Error(err))
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = resume.Name
	}
	if name == "" {
		name, err = (&promptui.Prompt{Label: "Your name"}).Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	role, _ := cmd.Flags().GetString("role")
	level, _ := cmd.Flags().GetString("level")

	out := cmd.OutOrStdout()
	if err := interact(ctx, svc, out, promptAnswer, interview.StartRequest{
		CandidateName: name,
		ResumeText:    resume.Text,
		Role:          role,
		Level:         level,
	}); err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			logger.Info("exiting", zap.String("reason", "interrupted"))
			return
		}
		logger.Fatal("interview failed", zap.Error(err))
	}
}

// answerFunc asks the candidate for an answer to q, writing any hints to out.
type answerFunc func(out io.Writer, q *interview.QuestionView, timeLimitSec int) (string, error)

// interact drives one interview from start to summary.
func interact(ctx context.Context, svc *interview.Service, out io.Writer, ask answerFunc, req interview.StartRequest) error {
	start, err := svc.StartInterview(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, start.Greeting)

	if start.Blocked {
		res, err := svc.SubmitAnswer(ctx, start.SessionID, "")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s\n", res.Summary)
		return nil
	}

	q, limit := start.Question, start.TimeLimitSec
	for q != nil {
		answer, err := ask(out, q, limit)
		if err != nil {
			return err
		}

		res, err := svc.SubmitAnswer(ctx, start.SessionID, answer)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s\n\n", res.Feedback)

		if res.Completed {
			fmt.Fprintln(out, res.Summary)
			return nil
		}

		q, limit = res.NextQuestion, res.TimeLimitSec
	}

	return nil
}

func promptAnswer(out io.Writer, q *interview.QuestionView, timeLimitSec int) (string, error) {
	label := fmt.Sprintf("Q%d [%s, %ds]: %s", q.ID, q.Skill, timeLimitSec, q.Text)

	if q.Type == interview.TypeMultipleChoice && len(q.Options) > 0 {
		_, option, err := (&promptui.Select{Label: label, Items: q.Options}).Run()
		return option, err
	}

	printCriteria(out, q)

	return (&promptui.Prompt{Label: label}).Run()
}

func printCriteria(out io.Writer, q *interview.QuestionView) {
	if len(q.Criteria) > 0 {
		fmt.Fprintf(out, "Graded on: %s\n", strings.Join(q.Criteria, ", "))
	}
}
