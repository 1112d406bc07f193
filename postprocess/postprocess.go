// Package postprocess cleans up model output for a declared format.
//
// Models often wrap an answer in a markdown code fence even when asked for
// raw output. Process removes a fence that encloses the whole response and,
// for JSON, re-serializes the result with two-space indentation.
package postprocess

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	ai "github.com/spetersoncode/aidispatch"
)

// fence matches a response that is exactly one fenced block.
var fence = regexp.MustCompile("^\\s*```([\\w+-]*)[ \\t]*\\r?\\n([\\s\\S]*?)\\r?\\n?```\\s*$")

// languages lists the fence tags accepted for each format.
var languages = map[ai.Format][]string{
	ai.FormatJSON:       {"json"},
	ai.FormatTypeScript: {"ts", "typescript", "js", "javascript"},
	ai.FormatMarkdown:   {"markdown", "md"},
	ai.FormatText:       {"text", "plain", "txt"},
}

// Result is the processed content plus any non-fatal problems found.
type Result struct {
	Content  string
	Warnings []error
}

type options struct {
	repairJSON bool
}

// Option configures Process.
type Option func(*options)

// WithJSONRepair attempts to repair malformed JSON before giving up on it.
func WithJSONRepair() Option {
	return func(o *options) {
		o.repairJSON = true
	}
}

// Process strips a whole-response code fence tagged for format and, for
// JSON, pretty-prints the content. Malformed JSON is returned as the
// stripped text with an *ai.OutputFormatWarning; Process never fails.
func Process(content string, format ai.Format, opts ...Option) Result {
	if format == ai.FormatNone {
		return Result{Content: content}
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	content = StripFence(content, format)
	if format != ai.FormatJSON {
		return Result{Content: content}
	}
	return formatJSON(content, o)
}

// StripFence returns the body of content when all of it is a single fenced
// block whose tag is empty or names format. Anything else is returned as is.
func StripFence(content string, format ai.Format) string {
	m := fence.FindStringSubmatch(content)
	if m == nil {
		return content
	}
	lang := strings.ToLower(m[1])
	if lang != "" && !acceptsLanguage(format, lang) {
		return content
	}
	return m[2]
}

func acceptsLanguage(format ai.Format, lang string) bool {
	for _, l := range languages[format] {
		if l == lang {
			return true
		}
	}
	return false
}

func formatJSON(content string, o options) Result {
	trimmed := strings.TrimSpace(content)
	pretty, err := indent(trimmed)
	if err == nil {
		return Result{Content: pretty}
	}

	if o.repairJSON {
		if repaired, repairErr := jsonrepair.JSONRepair(trimmed); repairErr == nil {
			if pretty, indentErr := indent(repaired); indentErr == nil {
				slog.Debug("repaired malformed JSON output")
				return Result{
					Content:  pretty,
					Warnings: []error{&ai.OutputFormatWarning{Format: ai.FormatJSON, Err: err, Repaired: true}},
				}
			}
		}
	}

	return Result{
		Content:  content,
		Warnings: []error{&ai.OutputFormatWarning{Format: ai.FormatJSON, Err: err}},
	}
}

// indent re-encodes the JSON value in s with two-space indentation.
// Object keys keep their order; numbers, strings and literals are
// re-serialized, so 1.50 becomes 1.5 and "\u0041" becomes "A".
func indent(s string) (string, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	var compact bytes.Buffer
	if err := encodeValue(dec, &compact); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return "", err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact.Bytes(), "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// encodeValue copies the next value from dec to buf in compact form.
func encodeValue(dec *json.Decoder, buf *bytes.Buffer) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return encodeScalar(buf, tok)
	}

	buf.WriteRune(rune(delim))
	for i := 0; dec.More(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if delim == '{' {
			key, err := dec.Token()
			if err != nil {
				return err
			}
			if err := encodeScalar(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
		}
		if err := encodeValue(dec, buf); err != nil {
			return err
		}
	}

	tok, err = dec.Token()
	if err != nil {
		return err
	}
	end, ok := tok.(json.Delim)
	if !ok {
		return fmt.Errorf("unexpected %v at end of %c", tok, delim)
	}
	buf.WriteRune(rune(end))
	return nil
}

func encodeScalar(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
