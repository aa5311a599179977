package contracts

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OptionType is the normalized option side
type OptionType string

const (
	Call OptionType = "Call"
	Put  OptionType = "Put"
)

// ParseOptionType normalizes call/calls/c and put/puts/p in any case
func ParseOptionType(s string) (OptionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "calls", "c":
		return Call, true
	case "put", "puts", "p":
		return Put, true
	default:
		return "", false
	}
}

// Statement is one entry of a post's ordered position disclosures:
// either a Position or a PriceRange.
type Statement interface {
	Render() string
	Kind() string
}

// Position is a single options position taken from post text.
// Expiration is the raw matched date token; it is never calendar-normalized.
type Position struct {
	Strike     decimal.Decimal `json:"strike"`
	OptionType OptionType      `json:"option_type"`
	Expiration string          `json:"expiration"`
	Contracts  *int            `json:"contracts,omitempty"`
}

// Kind implements Statement
func (p Position) Kind() string { return "position" }

// Render formats the position, e.g. "$15 Call 12/20/2024" or "200 $20 Call for 6/7"
func (p Position) Render() string {
	if p.Contracts != nil {
		return fmt.Sprintf("%d $%s %s for %s", *p.Contracts, p.Strike.String(), p.OptionType, p.Expiration)
	}
	return strings.TrimSpace(fmt.Sprintf("$%s %s %s", p.Strike.String(), p.OptionType, p.Expiration))
}

// PriceRange is a "targeting a price range of $low - $high" disclosure
type PriceRange struct {
	Low  decimal.Decimal `json:"low"`
	High decimal.Decimal `json:"high"`
}

// Kind implements Statement
func (r PriceRange) Kind() string { return "price_range" }

// Render formats the range as "$140 - $150"
func (r PriceRange) Render() string {
	return fmt.Sprintf("$%s - $%s", r.Low.String(), r.High.String())
}

// RenderStatements joins rendered statements the way report rows carry them
func RenderStatements(statements []Statement) string {
	parts := make([]string, 0, len(statements))
	for _, s := range statements {
		parts = append(parts, s.Render())
	}
	return strings.Join(parts, ", ")
}

// ExtractionResult is the per-post output of both engines
type ExtractionResult struct {
	Symbol     string      `json:"symbol,omitempty"` // empty when unresolved
	Statements []Statement `json:"statements"`
}
