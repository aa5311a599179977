package logger_test

import (
	"errors"

	"github.com/wonny/vulture/pkg/config"
	"github.com/wonny/vulture/pkg/logger"
)

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg).Component("processor")

	log.WithFields(map[string]interface{}{
		"category": "wallstreetbets",
		"symbol":   "GME",
		"post_id":  "t3_abc123",
	}).Info("Post processed")

	err := errors.New("reputation lookup timed out")
	log.WithError(err).WithField("author", "someone").Warn("Reputation unavailable")
}
