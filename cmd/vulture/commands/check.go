package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/vulture/internal/vocabulary"
	"github.com/wonny/vulture/pkg/database"
	"github.com/wonny/vulture/pkg/redis"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify configuration and infrastructure",
	Long: `Checks everything a scan depends on:
- configuration and Reddit credentials
- known-symbol vocabulary
- PostgreSQL (when DATABASE_URL is set)
- Redis (when REDIS_ENABLED=true)

Example:
  go run ./cmd/vulture check
  go run ./cmd/vulture check --env production`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Vulture Environment Check ===")
	failed := 0

	cfg, err := loadConfig()
	if err != nil {
		PrintError(err.Error())
		return err
	}
	PrintSuccess(fmt.Sprintf("Config loaded (ENV: %s)", cfg.Env))

	if err := cfg.RequireSource(); err != nil {
		PrintError(err.Error())
		failed++
	} else {
		PrintSuccess("Reddit credentials present")
	}

	if cfg.NEREnabled() {
		PrintSuccess(fmt.Sprintf("Named-entity recognition enabled (%s)", cfg.NER.Model))
	} else {
		PrintInfo("Named-entity recognition disabled")
	}

	vocab, err := vocabulary.Load(cfg.Vocabulary)
	if err != nil {
		PrintError(fmt.Sprintf("Vocabulary: %v", err))
		failed++
	} else {
		PrintSuccess(fmt.Sprintf("Vocabulary loaded (%d symbols, %d ambiguous)", vocab.Size(), len(vocab.Ambiguous())))
	}

	// PostgreSQL
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg)
	switch {
	case errors.Is(err, database.ErrNotConfigured):
		PrintInfo("PostgreSQL not configured")
	case err != nil:
		PrintError(fmt.Sprintf("PostgreSQL: %v", err))
		failed++
	default:
		status, err := db.HealthCheck(ctx)
		if err != nil {
			PrintError(fmt.Sprintf("PostgreSQL health check: %v", err))
			failed++
		} else {
			PrintSuccess(fmt.Sprintf("PostgreSQL healthy (%v, %d/%d conns)",
				status.ResponseTime, status.Stats.TotalConns, status.Stats.MaxConns))
		}
		db.Close()
	}

	// Redis
	if !cfg.Redis.Enabled {
		PrintInfo("Redis disabled (in-process rate limiting, no reputation cache)")
	} else {
		client, err := redis.New(ctx, cfg)
		if err != nil {
			PrintError(fmt.Sprintf("Redis: %v", err))
			failed++
		} else {
			PrintSuccess(fmt.Sprintf("Redis reachable (%s:%s)", cfg.Redis.Host, cfg.Redis.Port))
			_ = client.Close()
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Println()
	PrintSuccess("All checks passed")
	return nil
}
