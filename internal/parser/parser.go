package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Document is a source file decoded to text and ready for analysis.
type Document struct {
	Name string
	Text string
	// Delimiter is a hint derived from the file type; 0 means detect.
	Delimiter rune
}

// Reader turns raw file bytes into a Document.
type Reader interface {
	CanRead(filename string) bool
	Read(name string, content []byte) (Document, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ReadFile selects a reader based on filename and returns the decoded document.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read file: %w", err)
	}
	return ReadBytes(filepath.Base(path), data)
}

// ReadBytes decodes content using the reader registered for name. Names with
// no registered reader are read as delimited text with detection.
func ReadBytes(name string, content []byte) (Document, error) {
	for _, r := range registry {
		if r.CanRead(name) {
			return r.Read(name, content)
		}
	}
	if isBinaryName(name) {
		return Document{}, fmt.Errorf("%s: %w", name, ErrUnsupported)
	}
	return delimitedReader{}.Read(name, content)
}

// Decode converts content to UTF-8, honoring a UTF-8 or UTF-16 byte order
// mark and stripping it from the result.
func Decode(content []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, content)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(out), nil
}

func isBinaryName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls", ".ods", ".parquet", ".gz", ".zip":
		return true
	}
	return false
}

func init() {
	Register(delimitedReader{exts: []string{".csv", ".txt"}})
	Register(delimitedReader{exts: []string{".tsv", ".tab"}, delim: '\t'})
	Register(delimitedReader{exts: []string{".psv"}, delim: '|'})
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported document format")
