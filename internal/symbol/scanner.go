package symbol

import (
	"regexp"
	"strings"

	"github.com/wonny/vulture/internal/contracts"
)

var (
	// $ + 1-5 letters, e.g. $GME
	sigilPattern = regexp.MustCompile(`\$([A-Za-z]{1,5})\b`)
	// bare word of 1-5 letters
	barePattern = regexp.MustCompile(`\b([A-Za-z]{1,5})\b`)
)

// Scan returns the lexical ticker candidates of text, uppercased, in text order.
// Duplicates are kept for frequency ranking. When any sigil candidate exists
// only sigil candidates are returned.
func Scan(text string) []contracts.SymbolCandidate {
	if sigils := scanPattern(text, sigilPattern, true); len(sigils) > 0 {
		return sigils
	}
	return scanPattern(text, barePattern, false)
}

// HasSigil reports whether any candidate carries the $ sigil
func HasSigil(candidates []contracts.SymbolCandidate) bool {
	for _, c := range candidates {
		if c.HasSigil {
			return true
		}
	}
	return false
}

func scanPattern(text string, pattern *regexp.Regexp, sigil bool) []contracts.SymbolCandidate {
	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	origin := contracts.OriginLexicalBare
	if sigil {
		origin = contracts.OriginLexicalWithSigil
	}

	out := make([]contracts.SymbolCandidate, 0, len(matches))
	for _, m := range matches {
		out = append(out, contracts.SymbolCandidate{
			Text:     strings.ToUpper(text[m[2]:m[3]]),
			HasSigil: sigil,
			Origin:   origin,
			Offset:   m[0],
		})
	}
	return out
}
