package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"reviewkit/internal/domain"
)

// decodeObject parses a JSON object out of a model response, tolerating the
// usual markdown code fences.
func decodeObject(text string, v any) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOracleMalformed, err)
	}
	return nil
}
