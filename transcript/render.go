package transcript

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
)

//go:embed template.html
var pageTemplate string

var tmpl = template.Must(template.New("transcript").Funcs(template.FuncMap{
	"lines": func(s string) []string {
		if s == "" {
			return nil
		}
		return strings.Split(s, "\n")
	},
	"prev": func(i int) int { return i - 1 },
	"next": func(i int) int { return i + 1 },
}).Parse(pageTemplate))

// Render produces the complete HTML page in memory. It never partially
// succeeds: callers get the whole document or an error.
func Render(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render transcript: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the document and writes it to path. The page is written
// to a temporary file in the same directory first and renamed into place, so
// a failed run never leaves a truncated file that looks like a transcript.
func WriteFile(doc *Document, path string) error {
	page, err := Render(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".transcript-*.html")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(page); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write transcript: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close transcript: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("move transcript into place: %w", err)
	}
	return nil
}

// Write renders the document to an arbitrary writer (used for "-" → stdout).
func Write(doc *Document, w io.Writer) error {
	page, err := Render(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(page)
	return err
}
