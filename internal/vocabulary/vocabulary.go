package vocabulary

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is a fatal startup condition: no symbol can ever resolve
var ErrEmptyVocabulary = errors.New("known-symbol vocabulary is empty")

// Vocabulary is the immutable set of valid tickers plus the ambiguous subset
// (tickers that are also common English words, e.g. OR, AND, DD).
// Safe for concurrent use: it is never mutated after New.
// ⭐ SSOT: 종목 심볼 판정은 여기서만
type Vocabulary struct {
	symbols   map[string]struct{}
	ambiguous map[string]struct{}
}

// New builds a vocabulary. Entries are trimmed and uppercased;
// ambiguous entries that are not valid symbols are ignored.
func New(symbols, ambiguous []string) (*Vocabulary, error) {
	v := &Vocabulary{
		symbols:   make(map[string]struct{}, len(symbols)),
		ambiguous: make(map[string]struct{}, len(ambiguous)),
	}

	for _, s := range symbols {
		if s = normalize(s); s != "" {
			v.symbols[s] = struct{}{}
		}
	}
	if len(v.symbols) == 0 {
		return nil, ErrEmptyVocabulary
	}

	for _, s := range ambiguous {
		s = normalize(s)
		if _, ok := v.symbols[s]; ok {
			v.ambiguous[s] = struct{}{}
		}
	}

	return v, nil
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Contains reports whether text is a known symbol (case-insensitive)
func (v *Vocabulary) Contains(text string) bool {
	_, ok := v.symbols[normalize(text)]
	return ok
}

// IsAmbiguous reports whether text is a known symbol that collides with an English word
func (v *Vocabulary) IsAmbiguous(text string) bool {
	_, ok := v.ambiguous[normalize(text)]
	return ok
}

// Size returns the number of known symbols
func (v *Vocabulary) Size() int {
	return len(v.symbols)
}

// Ambiguous returns the ambiguous subset, sorted
func (v *Vocabulary) Ambiguous() []string {
	out := make([]string, 0, len(v.ambiguous))
	for s := range v.ambiguous {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
