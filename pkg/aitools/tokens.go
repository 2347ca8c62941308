// Package aitools provides token accounting helpers for dialogue history
// trimming.
package aitools

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const encodingName = "cl100k_base"

// CountTokens reports the total token count of the given texts.
func CountTokens(texts ...string) (int, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return 0, fmt.Errorf("failed to get encoding %s: %w", encodingName, err)
	}
	total := 0
	for _, text := range texts {
		total += len(enc.Encode(text, nil, nil))
	}
	return total, nil
}
