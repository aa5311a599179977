package contracts

import "time"

// Post is one fetched social-media post, read-only to the engines
// ⭐ SSOT: Post Source → Filter/Processor 전달
type Post struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	URL            string    `json:"url"`
	AuthorID       string    `json:"author_id,omitempty"` // empty when unknown or deleted
	CreatedAt      time.Time `json:"created_at"`          // UTC
	SourceCategory string    `json:"source_category"`     // e.g. subreddit
}

// HasAuthor reports whether a reputation lookup is possible
func (p *Post) HasAuthor() bool {
	return p.AuthorID != ""
}

// Mode selects which listing a Post Source reads
type Mode string

const (
	ModeTop Mode = "top"
	ModeNew Mode = "new"
)

// ParseMode converts a CLI/config value into a Mode
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeTop, ModeNew:
		return Mode(s), true
	default:
		return "", false
	}
}
