package symbol

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/nlp"
	"github.com/wonny/vulture/internal/vocabulary"
	"github.com/wonny/vulture/pkg/logger"
)

// stubTagger splits on whitespace and looks roles up by exact word.
// The veto stage lowercases ambiguous words before tagging, so their keys are lowercase.
type stubTagger struct {
	roles map[string]contracts.Role
	err   error
	calls int
}

func (s *stubTagger) Tag(text string) ([]contracts.TaggedToken, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []contracts.TaggedToken
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, ".,!?")
		out = append(out, contracts.TaggedToken{Text: w, Role: s.roles[w]})
	}
	return out, nil
}

type stubRecognizer struct {
	entities []contracts.Entity
	err      error
	calls    int
}

func (s *stubRecognizer) Recognize(ctx context.Context, text string) ([]contracts.Entity, error) {
	s.calls++
	return s.entities, s.err
}

func testVocabulary(t *testing.T) *vocabulary.Vocabulary {
	t.Helper()
	vocab, err := vocabulary.New(
		[]string{"GME", "AMC", "TSLA", "OR", "DD", "CAN"},
		[]string{"OR", "DD", "CAN"},
	)
	require.NoError(t, err)
	return vocab
}

func texts(ranked []contracts.RankedSymbol) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Text
	}
	return out
}

func TestScan(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		want      []string
		wantSigil bool
	}{
		{"sigil only", "DD $GME calls are 🚀", []string{"GME"}, true},
		{"lowercase sigil", "loading $gme", []string{"GME"}, true},
		{"bare words keep duplicates", "AMC or amc", []string{"AMC", "OR", "AMC"}, false},
		{"too long", "$TOOLONG ABCDEFG", nil, false},
		{"digits are not words", "200 $20c", nil, false},
		{"empty", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text)
			var gotTexts []string
			for _, c := range got {
				gotTexts = append(gotTexts, c.Text)
				assert.Equal(t, tt.wantSigil, c.HasSigil)
			}
			assert.Equal(t, tt.want, gotTexts)
		})
	}
}

func TestScan_Offsets(t *testing.T) {
	got := Scan("buy $GME and $AMC")
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[0].Offset)
	assert.Equal(t, 13, got[1].Offset)
	assert.Equal(t, contracts.OriginLexicalWithSigil, got[0].Origin)
}

func TestPolicy_FrequencyRanking(t *testing.T) {
	p := NewPolicy(testVocabulary(t), &stubTagger{}, logger.Nop())

	text := "AMC squeeze? GME GME GME"
	ranked := p.Rank(context.Background(), text, Scan(text))

	require.Len(t, ranked, 2)
	assert.Equal(t, contracts.RankedSymbol{Text: "GME", Score: 3, Rank: 1}, ranked[0])
	assert.Equal(t, contracts.RankedSymbol{Text: "AMC", Score: 1, Rank: 2}, ranked[1])
}

func TestPolicy_TieBrokenByFirstOffset(t *testing.T) {
	p := NewPolicy(testVocabulary(t), &stubTagger{}, logger.Nop())

	text := "TSLA then AMC then AMC then TSLA"
	ranked := p.Rank(context.Background(), text, Scan(text))
	assert.Equal(t, []string{"TSLA", "AMC"}, texts(ranked))
}

func TestPolicy_SigilRankedByFirstSeen(t *testing.T) {
	tagger := &stubTagger{}
	p := NewPolicy(testVocabulary(t), tagger, logger.Nop())

	text := "$AMC vs $GME $GME $XYZ"
	ranked := p.Rank(context.Background(), text, Scan(text))

	require.Len(t, ranked, 2)
	assert.Equal(t, "AMC", ranked[0].Text)
	assert.Equal(t, 2, ranked[1].Score)
	assert.Equal(t, 0, tagger.calls, "sigil spans skip the ambiguity veto")
}

func TestAmbiguityVeto(t *testing.T) {
	vocab := testVocabulary(t)
	ctx := context.Background()

	t.Run("conjunction is vetoed", func(t *testing.T) {
		tagger := &stubTagger{roles: map[string]contracts.Role{"or": contracts.RoleConjunction}}
		p := NewPolicy(vocab, tagger, logger.Nop())

		text := "Should I buy GME or sell"
		assert.Equal(t, []string{"GME"}, texts(p.Rank(ctx, text, Scan(text))))
	})

	t.Run("modal verb is vetoed", func(t *testing.T) {
		tagger := &stubTagger{roles: map[string]contracts.Role{"can": contracts.RoleVerb}}
		p := NewPolicy(vocab, tagger, logger.Nop())

		text := "CAN you believe AMC"
		assert.Equal(t, []string{"AMC"}, texts(p.Rank(ctx, text, Scan(text))))
	})

	t.Run("noun usage survives", func(t *testing.T) {
		tagger := &stubTagger{roles: map[string]contracts.Role{"dd": contracts.RoleNoun}}
		p := NewPolicy(vocab, tagger, logger.Nop())

		text := "DD inside"
		assert.Equal(t, []string{"DD"}, texts(p.Rank(ctx, text, Scan(text))))
	})

	t.Run("one function-word occurrence vetoes every occurrence", func(t *testing.T) {
		tagger := &stubTagger{roles: map[string]contracts.Role{"or": contracts.RoleConjunction}}
		p := NewPolicy(vocab, tagger, logger.Nop())

		text := "OR OR OR calls or puts"
		assert.Empty(t, p.Rank(ctx, text, Scan(text)))
	})

	t.Run("tagger failure drops ambiguous candidates", func(t *testing.T) {
		tagger := &stubTagger{err: errors.New("model unavailable")}
		p := NewPolicy(vocab, tagger, logger.Nop())

		text := "DD on GME"
		assert.Equal(t, []string{"GME"}, texts(p.Rank(ctx, text, Scan(text))))
	})

	t.Run("nil tagger drops ambiguous candidates", func(t *testing.T) {
		p := NewPolicy(vocab, nil, logger.Nop())

		text := "DD DD DD AMC"
		assert.Equal(t, []string{"AMC"}, texts(p.Rank(ctx, text, Scan(text))))
	})

	t.Run("tagger not called without ambiguous candidates", func(t *testing.T) {
		tagger := &stubTagger{}
		p := NewPolicy(vocab, tagger, logger.Nop())

		text := "GME AMC"
		p.Rank(ctx, text, Scan(text))
		assert.Equal(t, 0, tagger.calls)
	})
}

func TestAmbiguityVeto_ProseTagger(t *testing.T) {
	p := NewPolicy(testVocabulary(t), nlp.NewProseTagger(), logger.Nop())

	text := "Should I buy GME calls or sell puts?"
	assert.Equal(t, []string{"GME"}, texts(p.Rank(context.Background(), text, Scan(text))))
}

func TestAmbiguityVeto_ProseTaggerCapitalized(t *testing.T) {
	ambiguous := []string{"AND", "AT", "FOR", "BUT", "ON", "CAN", "OR"}
	vocab, err := vocabulary.New(append([]string{"GME", "AMC"}, ambiguous...), ambiguous)
	require.NoError(t, err)

	r := NewResolver(vocab, nlp.NewProseTagger(), nil, logger.Nop())
	ctx := context.Background()

	tests := []struct {
		title string
		want  string
	}{
		{"Buy AND hold", ""},
		{"SELL AT OPEN", ""},
		{"Waiting FOR earnings", ""},
		{"Good BUT risky", ""},
		{"What CAN I do", ""},
		{"Buy AND hold GME", "GME"},
		{"AMC OR GME", "AMC"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := r.Resolve(ctx, tt.title, "")
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmbiguityVeto_FoldsBeforeTagging(t *testing.T) {
	tagger := &stubTagger{roles: map[string]contracts.Role{"and": contracts.RoleConjunction}}
	vocab, err := vocabulary.New([]string{"GME", "AND"}, []string{"AND"})
	require.NoError(t, err)
	p := NewPolicy(vocab, tagger, logger.Nop())

	text := "Buy AND hold GME"
	assert.Equal(t, []string{"GME"}, texts(p.Rank(context.Background(), text, Scan(text))))
}

func TestAugmenter(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps organizations only", func(t *testing.T) {
		rec := &stubRecognizer{entities: []contracts.Entity{
			{Text: "tsla", Label: "ORG"},
			{Text: "Elon", Label: "PERSON"},
			{Text: "GameStop", Label: "organization"},
		}}
		got := NewAugmenter(rec, logger.Nop()).Augment(ctx, "elon and gamestop")

		require.Len(t, got, 2)
		assert.Equal(t, "TSLA", got[0].Text)
		assert.Equal(t, -1, got[0].Offset)
		assert.Equal(t, "GAMESTOP", got[1].Text)
		assert.Equal(t, 9, got[1].Offset)
		assert.Equal(t, contracts.OriginNamedEntity, got[1].Origin)
	})

	t.Run("errors yield nothing", func(t *testing.T) {
		rec := &stubRecognizer{err: errors.New("timeout")}
		assert.Empty(t, NewAugmenter(rec, logger.Nop()).Augment(ctx, "anything"))
	})

	t.Run("nil recognizer", func(t *testing.T) {
		assert.Empty(t, NewAugmenter(nil, logger.Nop()).Augment(ctx, "anything"))
	})
}

func TestResolver_Resolve(t *testing.T) {
	vocab := testVocabulary(t)
	tagger := &stubTagger{roles: map[string]contracts.Role{"or": contracts.RoleConjunction}}
	ctx := context.Background()

	tests := []struct {
		name   string
		title  string
		body   string
		want   string
		wantOK bool
	}{
		{"sigil beats frequency", "AMC AMC AMC $GME", "", "GME", true},
		{"emoji title", "DD $GME calls are 🚀", "", "GME", true},
		{"title short-circuits body", "GME to the moon", "AMC AMC AMC", "GME", true},
		{"falls back to body", "what do you think", "AMC looks cheap", "AMC", true},
		{"nothing found", "the market is up", "so is my coffee", "", false},
		{"ambiguous only", "this or that", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(vocab, tagger, nil, logger.Nop())
			got, ok := r.Resolve(ctx, tt.title, tt.body)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_NamedEntities(t *testing.T) {
	vocab := testVocabulary(t)
	ctx := context.Background()

	t.Run("entity candidate resolves", func(t *testing.T) {
		rec := &stubRecognizer{entities: []contracts.Entity{{Text: "TSLA", Label: "ORG"}}}
		r := NewResolver(vocab, &stubTagger{}, rec, logger.Nop())

		got, ok := r.Resolve(ctx, "the electric car company is flying", "")
		assert.True(t, ok)
		assert.Equal(t, "TSLA", got)
	})

	t.Run("recognizer skipped for sigil spans", func(t *testing.T) {
		rec := &stubRecognizer{entities: []contracts.Entity{{Text: "TSLA", Label: "ORG"}}}
		r := NewResolver(vocab, &stubTagger{}, rec, logger.Nop())

		got, ok := r.Resolve(ctx, "$AMC forever", "")
		assert.True(t, ok)
		assert.Equal(t, "AMC", got)
		assert.Equal(t, 0, rec.calls)
	})

	t.Run("entity occurrences add to lexical score", func(t *testing.T) {
		rec := &stubRecognizer{entities: []contracts.Entity{{Text: "AMC", Label: "ORG"}}}
		r := NewResolver(vocab, &stubTagger{}, rec, logger.Nop())

		ranked := r.Rank(ctx, "GME then AMC")
		require.Len(t, ranked, 2)
		assert.Equal(t, "AMC", ranked[0].Text)
		assert.Equal(t, 2, ranked[0].Score)
	})
}
