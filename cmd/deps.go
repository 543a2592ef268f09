package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/moodcheck/internal/assessment"
	"github.com/abhisek/moodcheck/internal/classifier"
	"github.com/abhisek/moodcheck/internal/config"
	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/llm"
	"github.com/abhisek/moodcheck/internal/questionnaire"
	"github.com/abhisek/moodcheck/internal/store"
	"github.com/spf13/cobra"
)

// loadConfig layers the persistent flags over the environment and
// validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()

	flags := map[string]*string{
		"db":         &cfg.DBPath,
		"model":      &cfg.ModelPath,
		"labels":     &cfg.LabelsPath,
		"classifier": &cfg.Classifier,
	}
	for name, field := range flags {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			*field = v
		}
	}
	cfg.Classifier = strings.ToLower(cfg.Classifier)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// pipeline is everything an assessment needs.
type pipeline struct {
	cfg     config.Config
	qn      *questionnaire.Questionnaire
	service *assessment.Service
}

// buildPipeline loads the questionnaire and artifacts and wires the
// configured classifier. repo may be nil to skip persistence; events may
// be nil to skip LLM call logging.
func buildPipeline(ctx context.Context, cfg config.Config, repo store.AssessmentRepo, events store.EventRepo) (*pipeline, error) {
	qn, err := questionnaire.Load()
	if err != nil {
		return nil, fmt.Errorf("load questionnaire: %w", err)
	}
	enc, err := encoder.New(qn)
	if err != nil {
		return nil, fmt.Errorf("build encoder: %w", err)
	}

	opts := assessment.Options{Classifier: cfg.Classifier, Repo: repo}

	var (
		model   classifier.Model
		decoder classifier.Decoder
	)
	switch cfg.Classifier {
	case config.ClassifierLLM:
		llmModel, labels, timeout, err := buildLLMModel(ctx, cfg, qn, events)
		if err != nil {
			return nil, err
		}
		model, decoder = llmModel, labels
		opts.Timeout = timeout

	default:
		artifact, err := classifier.LoadModel(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		labels, err := classifier.LoadDecoder(cfg.LabelsPath)
		if err != nil {
			return nil, err
		}
		if err := classifier.CheckCompatible(artifact, labels, qn); err != nil {
			return nil, err
		}
		model, decoder = artifact, labels
	}

	if unknown := classifier.UnknownFeatures(model); len(unknown) > 0 {
		fmt.Fprintf(os.Stderr, "warning: model expects columns the encoder never produces (always 0): %s\n",
			strings.Join(unknown, ", "))
	}

	return &pipeline{
		cfg:     cfg,
		qn:      qn,
		service: assessment.NewService(enc, model, decoder, opts),
	}, nil
}

// buildLLMModel resolves the provider from MOODCHECK_ variables, falling
// back to the vendors' standard key variables.
func buildLLMModel(ctx context.Context, cfg config.Config, qn *questionnaire.Questionnaire, events store.EventRepo) (*classifier.LLMModel, *classifier.Labels, time.Duration, error) {
	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, nil, 0, fmt.Errorf("LLM classifier not configured: %w", err)
		}
		llmCfg = discovered
	}

	var sink llm.EventSink
	if events != nil {
		sink = events
	}
	provider, err := llm.NewProvider(ctx, llmCfg, sink)
	if err != nil {
		return nil, nil, 0, err
	}

	labels := classifier.NewLabels(cfg.LLMLabels)
	if len(cfg.LLMLabels) == 0 {
		labels, err = classifier.LoadDecoder(cfg.LabelsPath)
		if err != nil {
			return nil, nil, 0, err
		}
	}

	model := classifier.NewLLMModel(provider, labels, qn, classifier.DefaultLLMModelConfig())
	return model, labels, llmCfg.Timeout, nil
}
