package symbol

import (
	"context"
	"strings"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/logger"
)

// Augmenter adds organization mentions found by an entity recognizer
type Augmenter struct {
	recognizer contracts.EntityRecognizer
	logger     *logger.Logger
}

// NewAugmenter creates an augmenter; a nil recognizer yields no candidates
func NewAugmenter(recognizer contracts.EntityRecognizer, log *logger.Logger) *Augmenter {
	return &Augmenter{
		recognizer: recognizer,
		logger:     log,
	}
}

// Augment returns uppercased organization entities of text.
// Recognizer failures are logged and produce no candidates.
func (a *Augmenter) Augment(ctx context.Context, text string) []contracts.SymbolCandidate {
	if a.recognizer == nil || strings.TrimSpace(text) == "" {
		return nil
	}

	entities, err := a.recognizer.Recognize(ctx, text)
	if err != nil {
		a.logger.WithError(err).Warn("Entity recognition failed, continuing without NER candidates")
		return nil
	}

	upperText := strings.ToUpper(text)
	out := make([]contracts.SymbolCandidate, 0, len(entities))
	for _, e := range entities {
		if !e.IsOrganization() {
			continue
		}
		name := strings.ToUpper(strings.TrimSpace(e.Text))
		if name == "" {
			continue
		}
		out = append(out, contracts.SymbolCandidate{
			Text:   name,
			Origin: contracts.OriginNamedEntity,
			Offset: strings.Index(upperText, name),
		})
	}
	return out
}
