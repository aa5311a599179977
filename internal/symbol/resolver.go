// Package symbol resolves the single ticker a post is about.
//
// A span (title or body) is scanned for lexical candidates, optionally
// augmented with organization entities, then filtered and ranked by the
// Policy. The title is tried first; the body only when the title yields nothing.
package symbol

import (
	"context"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/vocabulary"
	"github.com/wonny/vulture/pkg/logger"
)

// Resolver picks the most likely ticker of a post
// ⭐ SSOT: 게시글 → 종목 심볼 판정
type Resolver struct {
	augmenter *Augmenter
	policy    *Policy
	logger    *logger.Logger
}

// NewResolver creates a resolver with the default policy.
// recognizer may be nil when NER is disabled.
func NewResolver(vocab *vocabulary.Vocabulary, tagger contracts.PartOfSpeechTagger, recognizer contracts.EntityRecognizer, log *logger.Logger) *Resolver {
	log = log.Component("symbol")
	return NewResolverWithPolicy(NewPolicy(vocab, tagger, log), NewAugmenter(recognizer, log), log)
}

// NewResolverWithPolicy creates a resolver with a custom policy; augmenter may be nil
func NewResolverWithPolicy(policy *Policy, augmenter *Augmenter, log *logger.Logger) *Resolver {
	return &Resolver{
		augmenter: augmenter,
		policy:    policy,
		logger:    log,
	}
}

// Resolve returns the head of the title ranking, else the head of the body ranking
func (r *Resolver) Resolve(ctx context.Context, title, body string) (string, bool) {
	if sym, ok := contracts.Head(r.Rank(ctx, title)); ok {
		r.logger.WithFields(map[string]interface{}{
			"symbol": sym,
			"span":   "title",
		}).Debug("Symbol resolved")
		return sym, true
	}

	sym, ok := contracts.Head(r.Rank(ctx, body))
	if ok {
		r.logger.WithFields(map[string]interface{}{
			"symbol": sym,
			"span":   "body",
		}).Debug("Symbol resolved")
	}
	return sym, ok
}

// Rank returns the ranked symbols of a single span
func (r *Resolver) Rank(ctx context.Context, text string) []contracts.RankedSymbol {
	candidates := Scan(text)

	// NER 후보는 sigil이 없을 때만 추가
	if !HasSigil(candidates) && r.augmenter != nil {
		candidates = append(candidates, r.augmenter.Augment(ctx, text)...)
	}

	return r.policy.Rank(ctx, text, candidates)
}
