package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/ai/gemini"
	"github.com/spigell/hh-interviewer/internal/interview"
	"github.com/spigell/hh-interviewer/internal/logger"
	"github.com/spigell/hh-interviewer/internal/secrets"
)

// setup builds the logger and reads the config. Failures are fatal.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	return l, config
}

// newService wires the interview service. AI problems are logged and the
// service runs on the fallback bank and neutral grades instead.
func newService(ctx context.Context, config *Config, l *zap.Logger) (*interview.Service, error) {
	deps := interview.Deps{Logger: l}

	if config.AI.Enabled {
		generator, err := newGeminiGenerator(ctx, config.AI, l)
		if err != nil {
			l.Warn("ai is disabled, using fallback questions and grades", zap.Error(err))
		} else {
			aiLogger := logger.WithProvider(l, "gemini", generator.Model())
			deps.Questions = gemini.NewQuestionSource(generator, config.AI.Gemini.MaxLogLength, aiLogger)
			deps.Grader = gemini.NewRubricGrader(generator, config.AI.Gemini.MaxLogLength, aiLogger)
		}
	}

	svc, err := interview.NewService(*config.Interview, deps)
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func newGeminiGenerator(ctx context.Context, cfg *AIConfig, l *zap.Logger) (*gemini.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   []string{"GEMINI_API_KEY"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := l.With(
		zap.String(logger.FieldProvider, "gemini"),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
}
