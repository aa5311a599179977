package commands

import (
	"context"
	"fmt"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/nlp"
	"github.com/wonny/vulture/internal/position"
	"github.com/wonny/vulture/internal/symbol"
	"github.com/wonny/vulture/internal/vocabulary"
	"github.com/wonny/vulture/pkg/config"
	"github.com/wonny/vulture/pkg/logger"
)

// engines holds the wiring shared by scan and extract
type engines struct {
	cfg       *config.Config
	log       *logger.Logger
	vocab     *vocabulary.Vocabulary
	resolver  *symbol.Resolver
	extractor *position.Extractor
}

// loadConfig loads config and applies the global flags
func loadConfig() (*config.Config, error) {
	var files []string
	if configFile != "" {
		files = append(files, configFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newEngines loads the vocabulary and builds the resolver and extractor
func newEngines(ctx context.Context) (*engines, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg)

	vocab, err := vocabulary.Load(cfg.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}

	var recognizer contracts.EntityRecognizer = nlp.NoopRecognizer{}
	if cfg.NEREnabled() {
		gemini, err := nlp.NewGeminiRecognizer(ctx, cfg.NER.APIKey, cfg.NER.Model, cfg.NER.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create entity recognizer: %w", err)
		}
		recognizer = gemini
	} else {
		log.Debug("Named-entity recognition disabled")
	}

	log.WithFields(map[string]interface{}{
		"symbols":   vocab.Size(),
		"ambiguous": len(vocab.Ambiguous()),
		"ner":       cfg.NEREnabled(),
	}).Info("Vocabulary loaded")

	return &engines{
		cfg:       cfg,
		log:       log,
		vocab:     vocab,
		resolver:  symbol.NewResolver(vocab, nlp.NewProseTagger(), recognizer, log),
		extractor: position.NewExtractor(),
	}, nil
}
