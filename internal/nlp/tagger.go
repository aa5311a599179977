package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/wonny/vulture/internal/contracts"
)

// ProseTagger tags tokens with the prose averaged-perceptron model (Penn Treebank tags)
type ProseTagger struct{}

// NewProseTagger creates a tagger; the model is embedded, no I/O is involved
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag implements contracts.PartOfSpeechTagger
func (t *ProseTagger) Tag(text string) ([]contracts.TaggedToken, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("pos tagging failed: %w", err)
	}

	tokens := doc.Tokens()
	out := make([]contracts.TaggedToken, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, contracts.TaggedToken{
			Text: tok.Text,
			Tag:  tok.Tag,
			Role: RoleForPennTag(tok.Tag),
		})
	}
	return out, nil
}

// RoleForPennTag maps a Penn Treebank tag onto a coarse role.
// Modals (MD) count as verbs; TO and particles (RP) as adpositions.
func RoleForPennTag(tag string) contracts.Role {
	switch {
	case strings.HasPrefix(tag, "VB"), tag == "MD":
		return contracts.RoleVerb
	case tag == "CC":
		return contracts.RoleConjunction
	case tag == "IN", tag == "TO", tag == "RP":
		return contracts.RoleAdposition
	case strings.HasPrefix(tag, "NN"):
		return contracts.RoleNoun
	default:
		return contracts.RoleOther
	}
}
