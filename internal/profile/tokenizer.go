package profile

import (
	"io"
	"strings"
	"unicode/utf8"
)

const quote = '"'

// Tokenizer splits a document into rows of fields in a single forward pass.
type Tokenizer struct {
	text  string
	pos   int
	line  int
	delim rune
	field strings.Builder
}

// NewTokenizer returns a tokenizer over text using delim as field separator.
func NewTokenizer(text string, delim rune) *Tokenizer {
	return &Tokenizer{text: text, line: 1, delim: delim}
}

// Next returns the next row, or io.EOF once input is exhausted. A final
// newline does not produce a trailing empty row.
func (t *Tokenizer) Next() ([]string, error) {
	if t.pos >= len(t.text) {
		return nil, io.EOF
	}
	var row []string
	for {
		f, end, err := t.readField()
		if err != nil {
			return nil, err
		}
		row = append(row, f)
		if end {
			return row, nil
		}
	}
}

// readField consumes one field and its terminator. end reports whether the
// terminator closed the row (newline or end of input).
func (t *Tokenizer) readField() (field string, end bool, err error) {
	t.field.Reset()
	if t.pos < len(t.text) && t.text[t.pos] == quote {
		if err := t.readQuoted(); err != nil {
			return "", false, err
		}
	}
	for t.pos < len(t.text) {
		r, size := utf8.DecodeRuneInString(t.text[t.pos:])
		switch {
		case r == t.delim:
			t.pos += size
			return t.field.String(), false, nil
		case r == '\n':
			t.pos += size
			t.line++
			return t.field.String(), true, nil
		case r == '\r' && strings.HasPrefix(t.text[t.pos+size:], "\n"):
			t.pos += size + 1
			t.line++
			return t.field.String(), true, nil
		}
		t.field.WriteRune(r)
		t.pos += size
	}
	return t.field.String(), true, nil
}

// readQuoted consumes a quoted section starting at the opening quote and
// leaves pos just after the closing quote.
func (t *Tokenizer) readQuoted() error {
	openLine := t.line
	t.pos++
	for t.pos < len(t.text) {
		r, size := utf8.DecodeRuneInString(t.text[t.pos:])
		t.pos += size
		if r == quote {
			if t.pos < len(t.text) && t.text[t.pos] == quote {
				t.field.WriteByte(quote)
				t.pos++
				continue
			}
			return nil
		}
		if r == '\n' {
			t.line++
		}
		t.field.WriteRune(r)
	}
	return &MalformedQuotingError{Line: openLine}
}

// ReadAll tokenizes the whole text.
func ReadAll(text string, delim rune) ([][]string, error) {
	tok := NewTokenizer(text, delim)
	var rows [][]string
	for {
		row, err := tok.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
