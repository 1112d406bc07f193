package openai

import (
	"fmt"

	"github.com/openai/openai-go"
	ai "github.com/spetersoncode/aidispatch"
)

// userMessage converts prompt input into a single user message. Images are
// sent as data URIs.
func userMessage(in ai.Input) openai.ChatCompletionMessageParamUnion {
	if !in.HasImages() {
		return openai.UserMessage(in.Text)
	}
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: convertParts(in.Parts()),
			},
		},
	}
}

func convertParts(parts []ai.ContentPart) []openai.ChatCompletionContentPartUnionParam {
	var result []openai.ChatCompletionContentPartUnionParam
	for _, part := range parts {
		switch part.Type {
		case ai.ContentPartTypeText:
			if part.Text != "" {
				result = append(result, openai.TextContentPart(part.Text))
			}
		case ai.ContentPartTypeImage:
			mimeType := part.MimeType
			if mimeType == "" {
				mimeType = "image/jpeg"
			}
			result = append(result, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: fmt.Sprintf("data:%s;base64,%s", mimeType, part.Base64),
			}))
		}
	}
	return result
}
