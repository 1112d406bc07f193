package anthropic

import (
	"errors"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/spetersoncode/aidispatch"
)

func convertParts(parts []ai.ContentPart) []anthropic.ContentBlockParamUnion {
	var blocks []anthropic.ContentBlockParamUnion
	for _, part := range parts {
		switch part.Type {
		case ai.ContentPartTypeText:
			// Skip empty text parts - Anthropic API rejects empty text blocks
			if part.Text != "" {
				blocks = append(blocks, anthropic.NewTextBlock(part.Text))
			}
		case ai.ContentPartTypeImage:
			mediaType := part.MimeType
			if mediaType == "" {
				mediaType = "image/jpeg"
			}
			blocks = append(blocks, anthropic.NewImageBlockBase64(mediaType, part.Base64))
		}
	}
	return blocks
}

// firstText returns the text of the first text block.
func firstText(blocks []anthropic.ContentBlockUnion) (string, bool) {
	for _, block := range blocks {
		if block.Type == "text" {
			return block.Text, true
		}
	}
	return "", false
}

// wrapError categorizes an Anthropic SDK error by status code.
// Errors that are not API errors (network failures) are returned as-is.
func wrapError(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return ai.NewCategorizedError(http.StatusText(apiErr.StatusCode), apiErr.StatusCode, 0, err)
}
