package aidispatch

import (
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ContentPartType represents the type of content in a multimodal message part.
type ContentPartType string

const (
	ContentPartTypeText  ContentPartType = "text"
	ContentPartTypeImage ContentPartType = "image"
)

// ContentPart represents a single part of multimodal content.
type ContentPart struct {
	// Type indicates the content type: "text" or "image".
	Type ContentPartType `json:"type"`
	// Text contains the text content. Only used when Type is "text".
	Text string `json:"text,omitempty"`
	// Base64 contains base64-encoded image data. Only used when Type is "image".
	Base64 string `json:"base64,omitempty"`
	// MimeType specifies the image format (e.g., "image/jpeg", "image/png").
	MimeType string `json:"mimeType,omitempty"`
	// Source is the file the part was loaded from, if any.
	Source string `json:"source,omitempty"`
}

// NewTextPart creates a text content part.
func NewTextPart(text string) ContentPart {
	return ContentPart{
		Type: ContentPartTypeText,
		Text: text,
	}
}

// NewImageBase64Part creates an image content part from base64 data.
func NewImageBase64Part(base64Data, mimeType string) ContentPart {
	return ContentPart{
		Type:     ContentPartTypeImage,
		Base64:   base64Data,
		MimeType: mimeType,
	}
}

// imageMimeTypes maps image file extensions to MIME types.
var imageMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageMimeType returns the MIME type for an image path, or "" if the
// extension is not a supported image type.
func ImageMimeType(path string) string {
	return imageMimeTypes[strings.ToLower(filepath.Ext(path))]
}

// Input is the prompt content an adapter sends to its vendor.
type Input struct {
	// Text is the prompt, inlined text files, and any format instruction.
	Text string
	// Images holds inline image parts, in input-file order.
	Images []ContentPart
}

// Parts returns the text followed by the image parts.
func (in Input) Parts() []ContentPart {
	parts := make([]ContentPart, 0, len(in.Images)+1)
	if in.Text != "" {
		parts = append(parts, NewTextPart(in.Text))
	}
	return append(parts, in.Images...)
}

// HasImages reports whether any image parts were attached.
func (in Input) HasImages() bool {
	return len(in.Images) > 0
}

// BuildInput assembles the vendor input for req. Image files become inline
// parts when multimodal is true; every other file is appended to the text
// under a "File: <path>" marker. Unreadable files are logged and skipped.
func BuildInput(req Request, multimodal bool) Input {
	var sb strings.Builder
	sb.WriteString(req.Prompt)

	var in Input
	for _, path := range req.InputFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable input file", "error", &InputFileError{Path: path, Err: err})
			continue
		}

		if mimeType := ImageMimeType(path); multimodal && mimeType != "" {
			part := NewImageBase64Part(base64.StdEncoding.EncodeToString(data), mimeType)
			part.Source = path
			in.Images = append(in.Images, part)
			continue
		}

		sb.WriteString("\n\nFile: ")
		sb.WriteString(path)
		sb.WriteString("\n")
		sb.Write(data)
	}

	if instruction := req.Format.Instruction(); instruction != "" {
		sb.WriteString("\n\n")
		sb.WriteString(instruction)
	}

	in.Text = sb.String()
	return in
}
