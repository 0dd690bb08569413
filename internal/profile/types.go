package profile

import (
	"fmt"
	"strings"
)

// SemanticType is the closed set of value types the classifier recognizes.
type SemanticType int

const (
	Integer SemanticType = iota
	Float
	Boolean
	Date
	DateTime
	Time
	Email
	URL
	IP
	String
	Null
)

// ResolutionOrder is the tie-break order used when two types share the
// highest confidence: most structured first.
var ResolutionOrder = []SemanticType{Integer, Float, Boolean, Date, DateTime, Time, Email, URL, IP}

var typeNames = [...]string{
	Integer:  "integer",
	Float:    "float",
	Boolean:  "boolean",
	Date:     "date",
	DateTime: "datetime",
	Time:     "time",
	Email:    "email",
	URL:      "url",
	IP:       "ip",
	String:   "string",
	Null:     "null",
}

func (t SemanticType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("SemanticType(%d)", int(t))
	}
	return typeNames[t]
}

// MarshalText encodes the type as its lowercase name.
func (t SemanticType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(typeNames) {
		return nil, fmt.Errorf("unknown semantic type %d", int(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText accepts the lowercase names produced by MarshalText.
func (t *SemanticType) UnmarshalText(b []byte) error {
	p, err := ParseSemanticType(string(b))
	if err != nil {
		return err
	}
	*t = p
	return nil
}

// ParseSemanticType maps a type name (case-insensitive) back to its value.
func ParseSemanticType(s string) (SemanticType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == name {
			return SemanticType(i), nil
		}
	}
	return Null, fmt.Errorf("unknown semantic type %q", s)
}

// TypeSet is a bitmask of matched semantic types.
type TypeSet uint16

// Has reports whether t is in the set.
func (s TypeSet) Has(t SemanticType) bool { return s&(1<<uint(t)) != 0 }

func (s TypeSet) with(t SemanticType) TypeSet { return s | 1<<uint(t) }

// Types lists the members in enumeration order.
func (s TypeSet) Types() []SemanticType {
	var out []SemanticType
	for t := Integer; t <= Null; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// TypeMatch records whether a value matched one type.
type TypeMatch struct {
	Type    SemanticType `json:"type"`
	Matched bool         `json:"matched"`
}

// Matches expands the set into one TypeMatch per non-null type.
func (s TypeSet) Matches() []TypeMatch {
	out := make([]TypeMatch, 0, int(String)+1)
	for t := Integer; t <= String; t++ {
		out = append(out, TypeMatch{Type: t, Matched: s.Has(t)})
	}
	return out
}

// ColumnReport is the finalized profile of one column.
type ColumnReport struct {
	Name              string         `json:"name"`
	TypeName          SemanticType   `json:"type_name"`
	Confidence        float64        `json:"confidence"`
	Subtypes          []SemanticType `json:"subtypes"`
	FormatExamples    []string       `json:"format_examples"`
	TotalCount        int            `json:"total_count"`
	AnalyzedCount     int            `json:"analyzed_count"`
	ValidCount        int            `json:"valid_count"`
	UniqueValues      int            `json:"unique_values"`
	UniqueApproximate bool           `json:"unique_approximate,omitempty"`
	NullCount         int            `json:"null_count"`
	MinValue          *string        `json:"min_value"`
	MaxValue          *string        `json:"max_value"`
	MinLength         int            `json:"min_length"`
	MaxLength         int            `json:"max_length"`
}

// AnalysisReport is the document-level result of Analyze.
type AnalysisReport struct {
	RowCount          int            `json:"row_count"`
	ColumnCount       int            `json:"column_count"`
	SampleSize        *int           `json:"sample_size"`
	DetectedDelimiter string         `json:"detected_delimiter"`
	Columns           []ColumnReport `json:"columns"`
}

// Column returns the first column with the given name.
func (r *AnalysisReport) Column(name string) (ColumnReport, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnReport{}, false
}
