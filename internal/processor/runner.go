package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/logger"
)

// ErrAllSourcesFailed is returned when no requested category could be fetched
var ErrAllSourcesFailed = errors.New("post source failed for every category")

// RunConfig holds the parameters of one scan
type RunConfig struct {
	RunID      string
	Categories []string
	Modes      []contracts.Mode
	Window     string // top listing window: hour, day, week, month, year, all
	Limit      int    // per category and mode
}

// RunResult summarizes a scan
type RunResult struct {
	RunID            string
	Sections         []contracts.Section
	FailedCategories []string
	Fetched          int
	Rows             int
	Duration         time.Duration
}

// Runner fetches each category, processes its posts and writes one section per category
// ⭐ SSOT: 스캔 실행 조율은 여기서만
type Runner struct {
	source    contracts.PostSource
	processor *Processor
	sink      contracts.ReportSink
	logger    *logger.Logger
}

// NewRunner creates a scan runner
func NewRunner(source contracts.PostSource, processor *Processor, sink contracts.ReportSink, log *logger.Logger) *Runner {
	return &Runner{
		source:    source,
		processor: processor,
		sink:      sink,
		logger:    log.Component("runner"),
	}
}

// Run executes the scan. A category whose every listing fails is skipped;
// the run fails only when all categories fail or a sink write fails.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*RunResult, error) {
	startTime := time.Now()

	result := &RunResult{
		RunID:    cfg.RunID,
		Sections: make([]contracts.Section, 0, len(cfg.Categories)),
	}

	r.logger.WithFields(map[string]interface{}{
		"run_id":     cfg.RunID,
		"categories": cfg.Categories,
		"modes":      cfg.Modes,
		"window":     cfg.Window,
		"limit":      cfg.Limit,
	}).Info("Starting scan")

	for _, category := range cfg.Categories {
		posts, err := r.fetchCategory(ctx, category, cfg)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			r.logger.WithError(err).WithField("category", category).Error("Category fetch failed, skipping")
			result.FailedCategories = append(result.FailedCategories, category)
			continue
		}
		result.Fetched += len(posts)

		rows, err := r.processor.Process(ctx, posts)
		if err != nil {
			return result, fmt.Errorf("process %s: %w", category, err)
		}

		section := contracts.Section{
			Category: category,
			Label:    SectionLabel(category),
			Rows:     rows,
		}
		if r.sink != nil {
			if err := r.sink.WriteSection(ctx, section); err != nil {
				return result, fmt.Errorf("write section %s: %w", category, err)
			}
		}

		result.Sections = append(result.Sections, section)
		result.Rows += len(rows)

		r.logger.WithFields(map[string]interface{}{
			"category": category,
			"posts":    len(posts),
			"rows":     len(rows),
		}).Info("Category completed")
	}

	result.Duration = time.Since(startTime)

	if len(cfg.Categories) > 0 && len(result.FailedCategories) == len(cfg.Categories) {
		return result, ErrAllSourcesFailed
	}

	r.logger.WithFields(map[string]interface{}{
		"run_id":   cfg.RunID,
		"fetched":  result.Fetched,
		"rows":     result.Rows,
		"failed":   len(result.FailedCategories),
		"duration": result.Duration.Seconds(),
	}).Info("Scan completed")

	return result, nil
}

// fetchCategory reads every mode of a category and drops repeated post IDs.
// It fails only when every mode fails.
func (r *Runner) fetchCategory(ctx context.Context, category string, cfg RunConfig) ([]contracts.Post, error) {
	seen := make(map[string]struct{})
	posts := make([]contracts.Post, 0)

	var errs []error
	for _, mode := range cfg.Modes {
		fetched, err := r.source.FetchPosts(ctx, category, mode, cfg.Window, cfg.Limit)
		if err != nil {
			r.logger.WithError(err).WithFields(map[string]interface{}{
				"category": category,
				"mode":     string(mode),
			}).Warn("Listing fetch failed")
			errs = append(errs, fmt.Errorf("%s/%s: %w", category, mode, err))
			continue
		}

		for _, post := range fetched {
			if _, dup := seen[post.ID]; dup && post.ID != "" {
				continue
			}
			seen[post.ID] = struct{}{}
			posts = append(posts, post)
		}
	}

	if len(cfg.Modes) > 0 && len(errs) == len(cfg.Modes) {
		return nil, errors.Join(errs...)
	}
	return posts, nil
}

// SectionLabel capitalizes a category name for display, e.g. "options" → "Options"
func SectionLabel(category string) string {
	category = strings.TrimSpace(category)
	r, size := utf8.DecodeRuneInString(category)
	if size == 0 {
		return category
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(category[size:])
}
