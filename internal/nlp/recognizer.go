/*
Package nlp holds the natural-language collaborators of the symbol resolver:
a part-of-speech tagger and named-entity recognizers.
*/
package nlp

import (
	"context"

	"github.com/wonny/vulture/internal/contracts"
)

// NoopRecognizer is used when no entity recognizer is configured
type NoopRecognizer struct{}

// Recognize implements contracts.EntityRecognizer and never finds anything
func (NoopRecognizer) Recognize(ctx context.Context, text string) ([]contracts.Entity, error) {
	return nil, nil
}
