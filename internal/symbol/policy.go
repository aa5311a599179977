package symbol

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/vocabulary"
	"github.com/wonny/vulture/pkg/logger"
)

// Stage is one filtering step of the disambiguation policy.
// text is the span the candidates were found in.
type Stage interface {
	Name() string
	Apply(ctx context.Context, text string, candidates []contracts.SymbolCandidate) []contracts.SymbolCandidate
}

// VocabularyStage discards candidates that are not known symbols
type VocabularyStage struct {
	vocab *vocabulary.Vocabulary
}

// NewVocabularyStage creates a vocabulary filter
func NewVocabularyStage(vocab *vocabulary.Vocabulary) *VocabularyStage {
	return &VocabularyStage{vocab: vocab}
}

func (s *VocabularyStage) Name() string { return "vocabulary" }

// Apply implements Stage
func (s *VocabularyStage) Apply(_ context.Context, _ string, candidates []contracts.SymbolCandidate) []contracts.SymbolCandidate {
	out := make([]contracts.SymbolCandidate, 0, len(candidates))
	for _, c := range candidates {
		if s.vocab.Contains(c.Text) {
			out = append(out, c)
		}
	}
	return out
}

// AmbiguityVetoStage discards ambiguous symbols that are used as ordinary English.
// A token is vetoed when any of its occurrences in the text is tagged as a verb,
// coordinating conjunction or adposition. Ambiguous words are tagged in lower case.
// If tagging fails, every ambiguous candidate is discarded.
type AmbiguityVetoStage struct {
	vocab  *vocabulary.Vocabulary
	tagger contracts.PartOfSpeechTagger
	logger *logger.Logger
}

// NewAmbiguityVetoStage creates the veto stage; a nil tagger vetoes every ambiguous candidate
func NewAmbiguityVetoStage(vocab *vocabulary.Vocabulary, tagger contracts.PartOfSpeechTagger, log *logger.Logger) *AmbiguityVetoStage {
	return &AmbiguityVetoStage{
		vocab:  vocab,
		tagger: tagger,
		logger: log,
	}
}

func (s *AmbiguityVetoStage) Name() string { return "ambiguity_veto" }

// Apply implements Stage
func (s *AmbiguityVetoStage) Apply(_ context.Context, text string, candidates []contracts.SymbolCandidate) []contracts.SymbolCandidate {
	hasAmbiguous := false
	for _, c := range candidates {
		if s.vocab.IsAmbiguous(c.Text) {
			hasAmbiguous = true
			break
		}
	}
	if !hasAmbiguous {
		return candidates
	}

	vetoed, ok := s.vetoedTokens(text)

	out := make([]contracts.SymbolCandidate, 0, len(candidates))
	for _, c := range candidates {
		if s.vocab.IsAmbiguous(c.Text) {
			if !ok {
				continue
			}
			if _, bad := vetoed[c.Text]; bad {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// vetoedTokens returns the uppercased ambiguous tokens used as function words.
// ok is false when the text could not be tagged.
func (s *AmbiguityVetoStage) vetoedTokens(text string) (map[string]struct{}, bool) {
	if s.tagger == nil {
		return nil, false
	}

	tokens, err := s.tagger.Tag(s.foldAmbiguous(text))
	if err != nil {
		s.logger.WithError(err).Warn("POS tagging failed, discarding ambiguous candidates")
		return nil, false
	}

	vetoed := make(map[string]struct{})
	for _, tok := range tokens {
		word := strings.ToUpper(strings.TrimPrefix(tok.Text, "$"))
		if s.vocab.IsAmbiguous(word) && tok.Role.FunctionWord() {
			vetoed[word] = struct{}{}
		}
	}
	return vetoed, true
}

// foldAmbiguous lowercases the ambiguous words of text so "AND" is tagged like "and"
// instead of as a proper noun. Byte offsets are unchanged.
func (s *AmbiguityVetoStage) foldAmbiguous(text string) string {
	return barePattern.ReplaceAllStringFunc(text, func(word string) string {
		if s.vocab.IsAmbiguous(word) {
			return strings.ToLower(word)
		}
		return word
	})
}

// Policy reconciles candidates into a ranked list
// ⭐ SSOT: 심볼 판정 정책은 여기서만 (sigil → vocabulary → ambiguity veto → frequency)
type Policy struct {
	sigilStages []Stage
	stages      []Stage
	logger      *logger.Logger
}

// NewPolicy creates the default policy
func NewPolicy(vocab *vocabulary.Vocabulary, tagger contracts.PartOfSpeechTagger, log *logger.Logger) *Policy {
	vocabStage := NewVocabularyStage(vocab)
	return NewPolicyWithStages(
		[]Stage{vocabStage},
		[]Stage{vocabStage, NewAmbiguityVetoStage(vocab, tagger, log)},
		log,
	)
}

// NewPolicyWithStages creates a policy from explicit stage lists.
// sigilStages apply when the span has sigil candidates, stages otherwise.
func NewPolicyWithStages(sigilStages, stages []Stage, log *logger.Logger) *Policy {
	return &Policy{
		sigilStages: sigilStages,
		stages:      stages,
		logger:      log,
	}
}

// Rank filters candidates found in text and ranks the survivors.
// Sigil candidates are ranked by first-seen order, all others by
// occurrence count with first-seen order breaking ties.
func (p *Policy) Rank(ctx context.Context, text string, candidates []contracts.SymbolCandidate) []contracts.RankedSymbol {
	if len(candidates) == 0 {
		return nil
	}

	sigil := HasSigil(candidates)
	stages := p.stages
	if sigil {
		stages = p.sigilStages
	}

	for _, stage := range stages {
		before := len(candidates)
		candidates = stage.Apply(ctx, text, candidates)
		p.logger.WithFields(map[string]interface{}{
			"stage":  stage.Name(),
			"before": before,
			"after":  len(candidates),
		}).Debug("Policy stage applied")

		if len(candidates) == 0 {
			return nil
		}
	}

	return rank(candidates, !sigil)
}

type tally struct {
	text       string
	score      int
	offset     int
	firstIndex int
}

// rank groups candidates by text and orders them
func rank(candidates []contracts.SymbolCandidate, byScore bool) []contracts.RankedSymbol {
	byText := make(map[string]*tally, len(candidates))
	tallies := make([]*tally, 0, len(candidates))

	for i, c := range candidates {
		offset := c.Offset
		if offset < 0 {
			offset = math.MaxInt
		}

		t, ok := byText[c.Text]
		if !ok {
			t = &tally{text: c.Text, offset: offset, firstIndex: i}
			byText[c.Text] = t
			tallies = append(tallies, t)
		}
		t.score++
		if offset < t.offset {
			t.offset = offset
		}
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		a, b := tallies[i], tallies[j]
		if byScore && a.score != b.score {
			return a.score > b.score
		}
		if a.offset != b.offset {
			return a.offset < b.offset
		}
		return a.firstIndex < b.firstIndex
	})

	ranked := make([]contracts.RankedSymbol, len(tallies))
	for i, t := range tallies {
		ranked[i] = contracts.RankedSymbol{
			Text:  t.text,
			Score: t.score,
			Rank:  i + 1,
		}
	}
	return ranked
}
