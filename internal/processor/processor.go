// Package processor turns fetched posts into report rows.
package processor

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/filter"
	"github.com/wonny/vulture/internal/position"
	"github.com/wonny/vulture/internal/symbol"
	"github.com/wonny/vulture/pkg/logger"
)

// Options tunes a Processor
type Options struct {
	Concurrency       int           // posts processed at once, minimum 1
	ReputationTimeout time.Duration // 0 = caller context only
}

// Processor composes filter → resolver → extractor → reputation into one row per post
// ⭐ SSOT: 게시글 → 리포트 행 변환은 여기서만
type Processor struct {
	filter     *filter.Filter
	resolver   *symbol.Resolver
	extractor  *position.Extractor
	reputation contracts.ReputationService
	options    Options
	logger     *logger.Logger
}

// New creates a processor. reputation may be nil, in which case every row
// carries an unavailable reputation.
func New(
	f *filter.Filter,
	resolver *symbol.Resolver,
	extractor *position.Extractor,
	reputation contracts.ReputationService,
	options Options,
	log *logger.Logger,
) *Processor {
	if options.Concurrency < 1 {
		options.Concurrency = 1
	}
	return &Processor{
		filter:     f,
		resolver:   resolver,
		extractor:  extractor,
		reputation: reputation,
		options:    options,
		logger:     log.Component("processor"),
	}
}

// Process returns one row per admitted post, in input order.
// Per-post failures degrade the row; only cancellation of ctx is an error.
func (p *Processor) Process(ctx context.Context, posts []contracts.Post) ([]contracts.OutputRow, error) {
	results := make([]*contracts.OutputRow, len(posts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.options.Concurrency)

	for i := range posts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if row, ok := p.ProcessPost(gctx, posts[i]); ok {
				results[i] = &row
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]contracts.OutputRow, 0, len(posts))
	for _, r := range results {
		if r != nil {
			rows = append(rows, *r)
		}
	}

	p.logger.WithFields(map[string]interface{}{
		"posts":    len(posts),
		"rows":     len(rows),
		"rejected": len(posts) - len(rows),
	}).Debug("Posts processed")

	return rows, nil
}

// ProcessPost builds the row for one post; ok is false when the filter rejects it
func (p *Processor) ProcessPost(ctx context.Context, post contracts.Post) (contracts.OutputRow, bool) {
	if reason := p.filter.Reason(post); reason != filter.Admitted {
		p.logger.WithFields(map[string]interface{}{
			"post_id": post.ID,
			"reason":  string(reason),
		}).Debug("Post rejected by filter")
		return contracts.OutputRow{}, false
	}

	result := p.Extract(ctx, post.Title, post.Body)

	return contracts.OutputRow{
		Title:      post.Title,
		Symbol:     result.Symbol,
		Positions:  contracts.RenderStatements(result.Statements),
		Reputation: p.lookupReputation(ctx, post),
		URL:        post.URL,
		Category:   post.SourceCategory,
		PostID:     post.ID,
		Author:     post.AuthorID,
		CreatedAt:  post.CreatedAt,
	}, true
}

// Extract runs both engines on ad-hoc text
func (p *Processor) Extract(ctx context.Context, title, body string) contracts.ExtractionResult {
	sym, _ := p.resolver.Resolve(ctx, title, body)
	return contracts.ExtractionResult{
		Symbol:     sym,
		Statements: p.extractor.Extract(body),
	}
}

// lookupReputation returns nil when the author is unknown or the lookup fails
func (p *Processor) lookupReputation(ctx context.Context, post contracts.Post) *int {
	if p.reputation == nil || !post.HasAuthor() {
		return nil
	}

	if p.options.ReputationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.options.ReputationTimeout)
		defer cancel()
	}

	score, err := p.reputation.LookupReputation(ctx, post.AuthorID)
	if err != nil {
		p.logger.WithError(err).WithFields(map[string]interface{}{
			"post_id": post.ID,
			"author":  post.AuthorID,
		}).Warn("Reputation unavailable")
		return nil
	}
	return &score
}
