package position

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wonny/vulture/internal/contracts"
)

// Pattern recovers statements from a normalized body, in text order
type Pattern interface {
	Name() string
	Find(body string) []contracts.Statement
}

const (
	numericDate = `\d{1,2}/\d{1,2}(?:/(?:\d{4}|\d{2}))?`
	monthName   = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	ordinal     = `(?:st|nd|rd|th)?`
	dateToken   = `(?:` + numericDate +
		`|` + monthName + `\.?\s+\d{1,2}` + ordinal +
		`|\d{1,2}` + ordinal + `\s+` + monthName + `)\b`
	// 1,000 or 1000, optional decimals
	amount = `(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?`
)

var (
	// [$]strike type [Expiry|Exp|Expiration[.][:]] date
	structuredPattern = regexp.MustCompile(`(?i)(?:^|[^\w./,])\$?(` + amount + `)\s*(calls?|puts?|c|p)\b\s*(?:(?:expiry|expiration|exp)\.?:?\s*)?(` + dateToken + `)`)

	// "200 $20c for 6/7", also the rendered "200 $20 Call for 6/7"
	compactPattern = regexp.MustCompile(`(?i)\b(\d+)(?:\s+\$?|\s*\$)(` + amount + `)\s*(calls?|puts?|c|p)\b\s*for\s*(` + numericDate + `)\b`)

	// "targeting a price range of $140 - $150"
	priceRangePattern = regexp.MustCompile(`(?i)targeting\s+a\s+price\s+range\s+of\s+\$(` + amount + `)\s*[-–—]\s*\$?(` + amount + `)`)

	// "Positions -", "position:", "My positions:"
	positionsHeader = regexp.MustCompile(`(?i)\b(?:my\s+)?positions?\s*[:\-–—]`)
)

// StructuredPattern matches strike, option type and expiration
type StructuredPattern struct{}

func (StructuredPattern) Name() string { return "structured" }

// Find implements Pattern
func (StructuredPattern) Find(body string) []contracts.Statement {
	var out []contracts.Statement
	for _, sentence := range splitSentences(body) {
		for _, m := range structuredPattern.FindAllStringSubmatch(sentence, -1) {
			strike, err := parseAmount(m[1])
			if err != nil {
				continue
			}
			optionType, ok := contracts.ParseOptionType(m[2])
			if !ok {
				continue
			}
			out = append(out, contracts.Position{
				Strike:     strike,
				OptionType: optionType,
				Expiration: m[3],
			})
		}
	}
	return out
}

// PriceRangePattern matches price-range targets inside the positions section.
// Text before the first positions header is never scanned.
type PriceRangePattern struct{}

func (PriceRangePattern) Name() string { return "price_range" }

// Find implements Pattern
func (PriceRangePattern) Find(body string) []contracts.Statement {
	loc := positionsHeader.FindStringIndex(body)
	if loc == nil {
		return nil
	}

	var out []contracts.Statement
	for _, sentence := range splitSentences(body[loc[1]:]) {
		for _, m := range priceRangePattern.FindAllStringSubmatch(sentence, -1) {
			low, errLow := parseAmount(m[1])
			high, errHigh := parseAmount(m[2])
			if errLow != nil || errHigh != nil {
				continue
			}
			out = append(out, contracts.PriceRange{Low: low, High: high})
		}
	}
	return out
}

// CompactPattern matches "<contracts> $<strike><c|p> for <date>"
type CompactPattern struct{}

func (CompactPattern) Name() string { return "compact" }

// Find implements Pattern
func (CompactPattern) Find(body string) []contracts.Statement {
	var out []contracts.Statement
	for _, sentence := range splitSentences(body) {
		for _, m := range compactPattern.FindAllStringSubmatch(sentence, -1) {
			count, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			strike, err := parseAmount(m[2])
			if err != nil {
				continue
			}
			optionType, ok := contracts.ParseOptionType(m[3])
			if !ok {
				continue
			}
			out = append(out, contracts.Position{
				Strike:     strike,
				OptionType: optionType,
				Expiration: m[4],
				Contracts:  &count,
			})
		}
	}
	return out
}

// parseAmount parses a matched amount, dropping thousands separators
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

// DefaultPatterns returns the patterns in declaration order
func DefaultPatterns() []Pattern {
	return []Pattern{
		StructuredPattern{},
		PriceRangePattern{},
		CompactPattern{},
	}
}
