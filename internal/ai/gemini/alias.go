package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/jleboube/AI-Toolkit/internal/ai"
)

// SuggestAlias asks the model for a short slug candidate for the URL.
// Sanitizing and collision checks are the shortener's business.
func (c *Client) SuggestAlias(ctx context.Context, longURL string) (string, error) {
	prompt := fmt.Sprintf(ai.SuggestAliasPromptFormat, longURL)
	resp, err := c.generateContent(ctx, c.cfg.VisionModel, []part{{Text: prompt}}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to suggest alias: %w", err)
	}
	text, err := textFrom(resp)
	if err != nil {
		return "", fmt.Errorf("failed to suggest alias: %w", err)
	}
	return strings.TrimSpace(text), nil
}
