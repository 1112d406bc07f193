package cli

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	ai "github.com/spetersoncode/aidispatch"
)

// ErrorHint describes what to do about a categorized provider error.
// It returns "" for errors without a category.
func ErrorHint(err error) string {
	var ce ai.CategorizedError
	if !errors.As(err, &ce) {
		return ""
	}
	status := ai.StatusCodeOf(err)

	switch {
	case ai.IsTransient(err):
		hint := "provider temporarily unavailable, try again later"
		if status == http.StatusTooManyRequests {
			hint = "rate limited"
		}
		if d := ce.RetryAfter(); d > 0 {
			hint += fmt.Sprintf(", retry after %s", d.Round(time.Second))
		}
		return hint
	case ai.IsUserInput(err):
		return fmt.Sprintf("request rejected (status %d), check the model name and prompt", status)
	case ai.IsPermanent(err):
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return "check the provider API key and its permissions"
		}
		return fmt.Sprintf("provider refused the request (status %d)", status)
	}
	return ""
}
