package render

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/nivcodes/ainews/internal/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONRenderer serializes the full content object. This is the only
// structured persistence the tool has; everything else is presentation.
type JSONRenderer struct{}

func (JSONRenderer) Name() string     { return "json" }
func (JSONRenderer) Filename() string { return "newsletter.json" }

// Render marshals the content with indentation.
func (JSONRenderer) Render(content *core.NewsletterContent) (string, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal newsletter content: %w", err)
	}
	return string(data), nil
}

// ParseJSON is the inverse of JSONRenderer.Render, used to reload a
// previously written newsletter.
func ParseJSON(data []byte) (*core.NewsletterContent, error) {
	var content core.NewsletterContent
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to parse newsletter content: %w", err)
	}
	return &content, nil
}
