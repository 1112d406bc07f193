package google

import (
	"errors"

	ai "github.com/spetersoncode/aidispatch"
	"google.golang.org/genai"
)

// wrapError categorizes a GenAI error by status code.
// genai.APIError does not expose headers, so no Retry-After is available.
func wrapError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		// Not an API error, return as-is (likely a network error)
		return err
	}
	return ai.NewCategorizedError(apiErr.Message, apiErr.Code, 0, err)
}
