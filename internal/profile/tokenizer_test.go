package profile

import (
	"errors"
	"io"
	"reflect"
	"testing"
)

func TestReadAll(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		delim rune
		want  [][]string
	}{
		{"simple", "a,b\n1,2\n", ',', [][]string{{"a", "b"}, {"1", "2"}}},
		{"no final newline", "a,b\n1,2", ',', [][]string{{"a", "b"}, {"1", "2"}}},
		{"crlf", "a,b\r\n1,2\r\n", ',', [][]string{{"a", "b"}, {"1", "2"}}},
		{"quoted delimiter", "x\n\"1,2\"\n", ',', [][]string{{"x"}, {"1,2"}}},
		{"escaped quote", "x\n\"say \"\"hi\"\"\"\n", ',', [][]string{{"x"}, {`say "hi"`}}},
		{"newline in quotes", "x,y\n\"a\nb\",c\n", ',', [][]string{{"x", "y"}, {"a\nb", "c"}}},
		{"blank middle line", "a\n1\n\n3\n", ',', [][]string{{"a"}, {"1"}, {""}, {"3"}}},
		{"trailing empty field", "a,b\n1,\n", ',', [][]string{{"a", "b"}, {"1", ""}}},
		{"short row", "a,b,c\n1\n", ',', [][]string{{"a", "b", "c"}, {"1"}}},
		{"text after closing quote", "a\n\"ab\"c\n", ',', [][]string{{"a"}, {"abc"}}},
		{"quote inside unquoted field", "a\nx\"y\n", ',', [][]string{{"a"}, {`x"y`}}},
		{"lone carriage return kept", "a\nx\ry\n", ',', [][]string{{"a"}, {"x\ry"}}},
		{"semicolon", "a;b\n1;2\n", ';', [][]string{{"a", "b"}, {"1", "2"}}},
		{"multibyte delimiter", "a§b\n1§2\n", '§', [][]string{{"a", "b"}, {"1", "2"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadAll(tc.in, tc.delim)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("rows = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestTokenizerUnterminatedQuote(t *testing.T) {
	_, err := ReadAll("a,b\n1,2\n3,\"open\nstill open", ',')
	if !errors.Is(err, ErrMalformedQuoting) {
		t.Fatalf("err = %v, want ErrMalformedQuoting", err)
	}
	var mq *MalformedQuotingError
	if !errors.As(err, &mq) || mq.Line != 3 {
		t.Fatalf("err = %#v, want line 3", err)
	}
}

func TestTokenizerIsSinglePass(t *testing.T) {
	tok := NewTokenizer("a\n1\n", ',')
	for i := 0; i < 2; i++ {
		if _, err := tok.Next(); err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := tok.Next(); err != io.EOF {
			t.Fatalf("after end: err = %v, want io.EOF", err)
		}
	}
}
