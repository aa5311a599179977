package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/external/reddit"
	"github.com/wonny/vulture/internal/filter"
	"github.com/wonny/vulture/internal/processor"
	"github.com/wonny/vulture/internal/report"
	"github.com/wonny/vulture/pkg/database"
	"github.com/wonny/vulture/pkg/httputil"
	"github.com/wonny/vulture/pkg/redis"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan subreddits and write the report",
	Long: `Fetches each subreddit's listings, resolves tickers and positions,
looks up author karma and writes one section per subreddit.

Each run writes <REPORT_DIR>/<subreddit>_<timestamp>.csv and, with
REPORT_POSTGRES=true, rows into vulture.report_rows tagged with the run ID.

Flags:
  --category      subreddit (repeatable, default: SCAN_CATEGORIES)
  --mode          top|new (repeatable, default: SCAN_MODES)
  --limit         posts per subreddit and mode (default: SCAN_LIMIT)
  --window        top listing window: hour|day|week|month|year|all
  --stale-filter  drop posts older than FILTER_STALENESS_WINDOW

Example:
  go run ./cmd/vulture scan
  go run ./cmd/vulture scan --category options --mode new --limit 25
  go run ./cmd/vulture scan --stale-filter`,
	RunE: runScan,
}

var (
	scanCategories  []string
	scanModes       []string
	scanLimit       int
	scanWindow      string
	scanStaleFilter bool
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringSliceVar(&scanCategories, "category", nil, "subreddit to scan (repeatable)")
	scanCmd.Flags().StringSliceVar(&scanModes, "mode", nil, "listing mode: top or new (repeatable)")
	scanCmd.Flags().IntVar(&scanLimit, "limit", 0, "posts per subreddit and mode")
	scanCmd.Flags().StringVar(&scanWindow, "window", "", "top listing window")
	scanCmd.Flags().BoolVar(&scanStaleFilter, "stale-filter", false, "drop posts older than the staleness window")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	eng, err := newEngines(ctx)
	if err != nil {
		return err
	}
	cfg := eng.cfg
	log := eng.log

	if err := cfg.RequireSource(); err != nil {
		return err
	}

	// Flags override config
	if len(scanCategories) > 0 {
		cfg.Scan.Categories = scanCategories
	}
	if len(scanModes) > 0 {
		cfg.Scan.Modes = scanModes
	}
	if scanLimit > 0 {
		cfg.Scan.Limit = scanLimit
	}
	if scanWindow != "" {
		cfg.Scan.Window = scanWindow
	}
	if scanStaleFilter {
		cfg.Filter.StalenessEnabled = true
	}

	modes := make([]contracts.Mode, 0, len(cfg.Scan.Modes))
	for _, m := range cfg.Scan.Modes {
		mode, ok := contracts.ParseMode(strings.ToLower(m))
		if !ok {
			return fmt.Errorf("invalid mode %q (expected top or new)", m)
		}
		modes = append(modes, mode)
	}

	// Redis (optional): rate limit + reputation cache
	redisClient, err := redis.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	limiter := redis.NewRateLimiter(redisClient, "vulture")
	httpClient := httputil.New(log).
		WithUserAgent(cfg.Reddit.UserAgent).
		WithRateLimiter(limiter, redis.RedditRateLimit(cfg.Reddit.RequestsPerMinute))

	redditClient := reddit.NewClient(cfg.Reddit, httpClient, log)
	reputation := reddit.NewReputationService(
		redditClient,
		redis.NewCache(redisClient, "vulture"),
		cfg.Reputation.CacheTTL,
		log,
	)

	proc := processor.New(
		filter.New(cfg.Filter),
		eng.resolver,
		eng.extractor,
		reputation,
		processor.Options{
			Concurrency:       cfg.Scan.Concurrency,
			ReputationTimeout: cfg.Reputation.Timeout,
		},
		log,
	)

	runID := uuid.New()
	startedAt := time.Now()

	sinks := report.MultiSink{report.NewCSVSink(cfg.Report.Dir, startedAt, log)}
	if cfg.Report.Postgres {
		db, err := database.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		pgSink := report.NewPostgresSink(db.Pool, runID, log)
		if err := pgSink.EnsureSchema(ctx); err != nil {
			return err
		}
		sinks = append(sinks, pgSink)
	}

	PrintJobHeader(JobMetadata{
		RunID:      runID.String(),
		JobType:    "Reddit Scan",
		Tag:        "Scan",
		Timestamp:  startedAt.Format(time.RFC3339),
		Categories: strings.Join(cfg.Scan.Categories, ", "),
	})

	runner := processor.NewRunner(redditClient, proc, sinks, log)
	result, err := runner.Run(ctx, processor.RunConfig{
		RunID:      runID.String(),
		Categories: cfg.Scan.Categories,
		Modes:      modes,
		Window:     cfg.Scan.Window,
		Limit:      cfg.Scan.Limit,
	})
	if result != nil {
		printScanResult(result)
	}
	if errors.Is(err, processor.ErrAllSourcesFailed) {
		return fmt.Errorf("scan failed: %w", err)
	}
	if err != nil {
		return err
	}

	PrintJobCompletion(runID.String(), result.Duration.Seconds())
	return nil
}

func printScanResult(result *processor.RunResult) {
	fmt.Println()
	widths := []int{16, 8, 8, 8}
	PrintTableHeader([]string{"Section", "Rows", "Symbols", "Positions"}, widths)
	for _, section := range result.Sections {
		symbols, positions := 0, 0
		for _, row := range section.Rows {
			if row.Symbol != "" {
				symbols++
			}
			if row.Positions != "" {
				positions++
			}
		}
		PrintTableRow([]string{
			section.Label,
			fmt.Sprintf("%d", len(section.Rows)),
			fmt.Sprintf("%d", symbols),
			fmt.Sprintf("%d", positions),
		}, widths)
	}

	if len(result.FailedCategories) > 0 {
		PrintWarning(fmt.Sprintf("Failed subreddits: %s", strings.Join(result.FailedCategories, ", ")))
	}
}
