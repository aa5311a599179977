package nlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/wonny/vulture/internal/contracts"
)

const entityInstruction = `
You are a named-entity recognizer for informal stock-market forum posts.

Return every organization mentioned in the text: companies, funds, exchanges and
ticker-like abbreviations used as company names. Copy each mention exactly as it
appears in the text, once per occurrence. Label organizations "ORG".
Label people "PERSON" and places "GPE". Do not invent mentions that are not in the text.
`

// GeminiRecognizer recognizes entities through the Gemini API
type GeminiRecognizer struct {
	models  generator
	model   string
	timeout time.Duration
}

// generator is the slice of genai.Models used here
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGeminiRecognizer creates a recognizer backed by the Gemini API
func NewGeminiRecognizer(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiRecognizer, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiRecognizer{
		models:  client.Models,
		model:   model,
		timeout: timeout,
	}, nil
}

// Recognize implements contracts.EntityRecognizer
func (g *GeminiRecognizer) Recognize(ctx context.Context, text string) ([]contracts.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	userContent := &genai.Content{
		Parts: []*genai.Part{
			{Text: fmt.Sprintf("Extract the entities from the following post text:\n\n---\n%s", text)},
		},
		Role: "user",
	}

	resp, err := g.models.GenerateContent(ctx, g.model, []*genai.Content{userContent}, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: entityInstruction}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   entityResponseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	return parseEntities(resp.Text())
}

type entityResponse struct {
	Entities []contracts.Entity `json:"entities"`
}

func parseEntities(raw string) ([]contracts.Entity, error) {
	var parsed entityResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini JSON response: %w", err)
	}

	out := parsed.Entities[:0]
	for _, e := range parsed.Entities {
		if e.Text = strings.TrimSpace(e.Text); e.Text != "" {
			out = append(out, e)
		}
	}
	return out, nil
}

func entityResponseSchema() *genai.Schema {
	entitySchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":  {Type: genai.TypeString, Description: "The mention, copied verbatim from the text."},
			"label": {Type: genai.TypeString, Description: "ORG, PERSON or GPE.", Enum: []string{"ORG", "PERSON", "GPE"}},
		},
		Required: []string{"text", "label"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"entities": {
				Type:  genai.TypeArray,
				Items: entitySchema,
			},
		},
		Required: []string{"entities"},
	}
}
