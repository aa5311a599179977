package contracts

import (
	"strconv"
	"time"
)

// OutputRow is one report line per admitted post
// ⭐ SSOT: Processor → Report Sink 전달
type OutputRow struct {
	Title      string `json:"title"`
	Symbol     string `json:"symbol"`
	Positions  string `json:"positions"`
	Reputation *int   `json:"reputation"` // nil = unavailable
	URL        string `json:"url"`

	// carried for sinks
	Category  string    `json:"category"`
	PostID    string    `json:"post_id"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReputationText renders the reputation column ("" when unavailable)
func (r *OutputRow) ReputationText() string {
	if r.Reputation == nil {
		return ""
	}
	return strconv.Itoa(*r.Reputation)
}

// Section is one group of rows handed to a sink (one sheet per category)
type Section struct {
	Category string      `json:"category"`
	Label    string      `json:"label"`
	Rows     []OutputRow `json:"rows"`
}
