package google

import (
	"encoding/base64"
	"fmt"
	"strings"

	ai "github.com/spetersoncode/aidispatch"
	"google.golang.org/genai"
)

func convertParts(parts []ai.ContentPart) ([]*genai.Part, error) {
	var result []*genai.Part
	for _, part := range parts {
		switch part.Type {
		case ai.ContentPartTypeText:
			if part.Text != "" {
				result = append(result, &genai.Part{Text: part.Text})
			}
		case ai.ContentPartTypeImage:
			data, err := base64.StdEncoding.DecodeString(part.Base64)
			if err != nil {
				return nil, fmt.Errorf("decode image %s: %w", part.Source, err)
			}
			mimeType := part.MimeType
			if mimeType == "" {
				mimeType = "image/jpeg"
			}
			result = append(result, &genai.Part{
				InlineData: &genai.Blob{
					Data:     data,
					MIMEType: mimeType,
				},
			})
		}
	}
	return result, nil
}

// candidateText concatenates the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// BlockedError indicates the request was blocked by content filtering.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("request blocked: %s", e.Reason)
}

func checkBlocked(resp *genai.GenerateContentResponse) error {
	if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return &BlockedError{Reason: string(resp.PromptFeedback.BlockReason)}
	}
	return nil
}
