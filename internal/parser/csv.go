package parser

import (
	"path/filepath"
	"strings"
)

// delimitedReader handles plain delimited text. delim is the hint reported
// for matching files; 0 leaves detection to the analyzer.
type delimitedReader struct {
	exts  []string
	delim rune
}

func (r delimitedReader) CanRead(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range r.exts {
		if ext == e {
			return true
		}
	}
	return false
}

func (r delimitedReader) Read(name string, content []byte) (Document, error) {
	text, err := Decode(content)
	if err != nil {
		return Document{}, err
	}
	return Document{Name: name, Text: text, Delimiter: r.delim}, nil
}
