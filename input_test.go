package aidispatch

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestImageMimeType(t *testing.T) {
	assert.Equal(t, "image/jpeg", ImageMimeType("a.jpg"))
	assert.Equal(t, "image/jpeg", ImageMimeType("a.JPEG"))
	assert.Equal(t, "image/png", ImageMimeType("dir/a.png"))
	assert.Equal(t, "image/gif", ImageMimeType("a.gif"))
	assert.Equal(t, "image/webp", ImageMimeType("a.webp"))
	assert.Empty(t, ImageMimeType("a.txt"))
	assert.Empty(t, ImageMimeType("noext"))
}

func TestBuildInput(t *testing.T) {
	dir := t.TempDir()
	textPath := writeFile(t, dir, "notes.txt", []byte("some notes"))
	imgPath := writeFile(t, dir, "pic.png", []byte{0x89, 'P', 'N', 'G'})

	t.Run("prompt only", func(t *testing.T) {
		in := BuildInput(Request{Prompt: "hello"}, true)
		assert.Equal(t, "hello", in.Text)
		assert.False(t, in.HasImages())
	})

	t.Run("text files are appended with a marker", func(t *testing.T) {
		in := BuildInput(Request{Prompt: "summarize", InputFiles: []string{textPath}}, true)
		assert.Equal(t, "summarize\n\nFile: "+textPath+"\nsome notes", in.Text)
	})

	t.Run("images become inline parts when multimodal", func(t *testing.T) {
		in := BuildInput(Request{Prompt: "describe", InputFiles: []string{imgPath}}, true)
		assert.Equal(t, "describe", in.Text)
		require.Len(t, in.Images, 1)
		assert.Equal(t, "image/png", in.Images[0].MimeType)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0x89, 'P', 'N', 'G'}), in.Images[0].Base64)
		assert.Equal(t, imgPath, in.Images[0].Source)

		parts := in.Parts()
		require.Len(t, parts, 2)
		assert.Equal(t, ContentPartTypeText, parts[0].Type)
		assert.Equal(t, ContentPartTypeImage, parts[1].Type)
	})

	t.Run("images are inlined as text without multimodal support", func(t *testing.T) {
		in := BuildInput(Request{Prompt: "describe", InputFiles: []string{imgPath}}, false)
		assert.False(t, in.HasImages())
		assert.Contains(t, in.Text, "File: "+imgPath)
	})

	t.Run("unreadable files are skipped", func(t *testing.T) {
		missing := filepath.Join(dir, "missing.txt")
		in := BuildInput(Request{Prompt: "go", InputFiles: []string{missing, textPath}}, true)
		assert.NotContains(t, in.Text, missing)
		assert.Contains(t, in.Text, "File: "+textPath+"\nsome notes")
	})

	t.Run("format instruction goes last", func(t *testing.T) {
		in := BuildInput(Request{Prompt: "list", Format: FormatJSON, InputFiles: []string{textPath}}, true)
		assert.Equal(t,
			"list\n\nFile: "+textPath+"\nsome notes\n\nPlease provide the response in valid JSON format.",
			in.Text)
	})
}
