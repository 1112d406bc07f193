// Package output delivers processed content to the console or a file.
package output

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ai "github.com/spetersoncode/aidispatch"
)

// Write prints content to w when path is empty, otherwise writes it to path.
// An existing file is only replaced when overwrite is set; parent
// directories are created as needed.
func Write(w io.Writer, path, content string, overwrite bool) error {
	if path == "" {
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		_, err := io.WriteString(w, content)
		return err
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return &ai.OutputConflictError{Path: path}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("check output file: %w", err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &ai.OutputConflictError{Path: path}
		}
		return fmt.Errorf("open output file: %w", err)
	}
	if _, err := io.WriteString(f, content); err != nil {
		f.Close()
		return fmt.Errorf("write output file: %w", err)
	}
	return f.Close()
}
