package contracts

// CandidateOrigin records which scanner produced a symbol candidate
type CandidateOrigin int

const (
	OriginLexicalWithSigil CandidateOrigin = iota
	OriginLexicalBare
	OriginNamedEntity
)

func (o CandidateOrigin) String() string {
	switch o {
	case OriginLexicalWithSigil:
		return "lexical_sigil"
	case OriginLexicalBare:
		return "lexical_bare"
	case OriginNamedEntity:
		return "named_entity"
	default:
		return "unknown"
	}
}

// SymbolCandidate is one raw ticker mention found in a text span
type SymbolCandidate struct {
	Text     string          `json:"text"` // uppercased
	HasSigil bool            `json:"has_sigil"`
	Origin   CandidateOrigin `json:"origin"`
	Offset   int             `json:"offset"` // byte offset in the span, -1 if unknown
}

// RankedSymbol is a surviving candidate with its occurrence count
// ⭐ SSOT: 랭킹 정책 → Resolver 결과 전달
type RankedSymbol struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
	Rank  int    `json:"rank"` // 1-based ranking
}

// Head returns the top-ranked symbol, if any
func Head(ranked []RankedSymbol) (string, bool) {
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Text, true
}
