package contracts

import "context"

// PostSource supplies already-fetched posts; pagination is its own concern
// ⭐ SSOT: 게시글 수집 인터페이스
type PostSource interface {
	FetchPosts(ctx context.Context, category string, mode Mode, window string, limit int) ([]Post, error)
}

// ReputationService returns an author's credibility score (e.g. karma)
type ReputationService interface {
	LookupReputation(ctx context.Context, authorID string) (int, error)
}

// EntityRecognizer is an optional NLP capability returning labelled entity spans
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// PartOfSpeechTagger assigns grammatical roles to the tokens of a text
type PartOfSpeechTagger interface {
	Tag(text string) ([]TaggedToken, error)
}

// ReportSink persists processed rows, one section per source category
type ReportSink interface {
	WriteSection(ctx context.Context, section Section) error
}
