package backend

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// BuildGenerateBody builds the JSON body for /generate-image. The userId field
// is only written when set, so the default body is exactly {"prompt":...}.
func BuildGenerateBody(prompt, userID string) (string, error) {
	body, err := sjson.Set(`{}`, "prompt", prompt)
	if err != nil {
		return "", fmt.Errorf("failed to set prompt: %w", err)
	}

	if userID != "" {
		body, err = sjson.Set(body, "userId", userID)
		if err != nil {
			return "", fmt.Errorf("failed to set userId: %w", err)
		}
	}

	return body, nil
}
