package profile

import (
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxFormatExamples caps ColumnReport.FormatExamples.
	MaxFormatExamples = 5
	// SubtypeThreshold is the minimum confidence for a non-dominant type to
	// be listed in ColumnReport.Subtypes.
	SubtypeThreshold = 0.05
)

// sortKey orders raw values under one type's semantics.
type sortKey struct {
	num float64
	at  time.Time
}

// extremum tracks the min and max raw value seen under one ordering.
type extremum struct {
	set            bool
	min, max       string
	minKey, maxKey sortKey
}

func (e *extremum) observe(t SemanticType, raw string, k sortKey) {
	if !e.set {
		e.set = true
		e.min, e.max, e.minKey, e.maxKey = raw, raw, k, k
		return
	}
	if compareAs(t, raw, k, e.min, e.minKey) < 0 {
		e.min, e.minKey = raw, k
	}
	if compareAs(t, raw, k, e.max, e.maxKey) > 0 {
		e.max, e.maxKey = raw, k
	}
}

// compareAs orders a before b using t's semantics. Numeric and chronological
// types compare by parsed key; everything else is lexicographic.
func compareAs(t SemanticType, a string, ak sortKey, b string, bk sortKey) int {
	switch t {
	case Integer, Float:
		if c := compareFloat(ak.num, bk.num); c != 0 {
			return c
		}
		// float64 keys collide past 2^53 and beyond the float range
		return compareDecimal(a, b)
	case Time:
		return compareFloat(ak.num, bk.num)
	case Date, DateTime:
		return ak.at.Compare(bk.at)
	}
	return strings.Compare(a, b)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// maxExactExponentDigits bounds the exponents compareDecimal expands exactly.
const maxExactExponentDigits = 4

// compareDecimal compares two numeric literals exactly. Literals with an
// exponent wider than maxExactExponentDigits compare equal.
func compareDecimal(a, b string) int {
	if a == b {
		return 0
	}
	ra, ok := exactRat(a)
	if !ok {
		return 0
	}
	rb, ok := exactRat(b)
	if !ok {
		return 0
	}
	return ra.Cmp(rb)
}

func exactRat(v string) (*big.Rat, bool) {
	if i := strings.IndexAny(v, "eE"); i >= 0 && len(trimSign(v[i+1:])) > maxExactExponentDigits {
		return nil, false
	}
	return new(big.Rat).SetString(v)
}

func keyFor(t SemanticType, v string) sortKey {
	switch t {
	case Integer, Float:
		f, _ := strconv.ParseFloat(v, 64)
		return sortKey{num: f}
	case Date:
		at, _ := parseDate(v)
		return sortKey{at: at}
	case DateTime:
		at, _ := parseDateTime(v)
		return sortKey{at: at}
	case Time:
		d, _ := parseClock(v)
		return sortKey{num: float64(d)}
	}
	return sortKey{}
}

// Accumulator gathers statistics for one column. The column's type is not
// known until Finalize, so extrema are tracked per candidate type and the
// resolved type's pair is reported.
type Accumulator struct {
	name     string
	total    int
	analyzed int
	nulls    int
	matches  [String]int
	extrema  [String + 1]extremum
	distinct *distinctCounter
	minLen   int
	maxLen   int
	examples []string
}

// NewAccumulator returns an empty accumulator for the named column.
func NewAccumulator(name string, distinctLimit int) *Accumulator {
	return &Accumulator{name: name, distinct: newDistinctCounter(distinctLimit)}
}

// Skip counts a present value that the sampling cap kept out of analysis.
func (a *Accumulator) Skip() { a.total++ }

// Analyzed returns the number of values passed to Add so far.
func (a *Accumulator) Analyzed() int { return a.analyzed }

// Add records one analyzed value. value must already be trimmed; an empty
// value is a null. set is ignored for nulls.
func (a *Accumulator) Add(value string, set TypeSet) {
	a.total++
	a.analyzed++
	if value == "" {
		a.nulls++
		return
	}
	a.distinct.Add(value)

	n := utf8.RuneCountInString(value)
	if a.analyzed-a.nulls == 1 || n < a.minLen {
		a.minLen = n
	}
	if n > a.maxLen {
		a.maxLen = n
	}

	if len(a.examples) < MaxFormatExamples && !contains(a.examples, value) {
		a.examples = append(a.examples, value)
	}

	var numKey sortKey
	numParsed := false
	for t := Integer; t < String; t++ {
		if !set.Has(t) {
			continue
		}
		a.matches[t]++
		var k sortKey
		switch t {
		case Integer, Float:
			if !numParsed {
				numKey, numParsed = keyFor(t, value), true
			}
			k = numKey
		default:
			k = keyFor(t, value)
		}
		a.extrema[t].observe(t, value, k)
	}
	a.extrema[String].observe(String, value, sortKey{})
}

// Finalize resolves the dominant type and builds the column report.
func (a *Accumulator) Finalize() ColumnReport {
	valid := a.analyzed - a.nulls
	rep := ColumnReport{
		Name:              a.name,
		TypeName:          String,
		Subtypes:          []SemanticType{},
		FormatExamples:    append([]string{}, a.examples...),
		TotalCount:        a.total,
		AnalyzedCount:     a.analyzed,
		ValidCount:        valid,
		UniqueValues:      a.distinct.Count(),
		UniqueApproximate: a.distinct.Approximate(),
		NullCount:         a.nulls,
		MinLength:         a.minLen,
		MaxLength:         a.maxLen,
	}
	if valid == 0 {
		return rep
	}

	best, bestConf := String, 0.0
	for _, t := range ResolutionOrder {
		if c := a.confidence(t, valid); c > bestConf {
			best, bestConf = t, c
		}
	}
	if best == String {
		rep.Confidence = 1.0
	} else {
		rep.TypeName = best
		rep.Confidence = bestConf
		for _, t := range ResolutionOrder {
			if t != best && a.confidence(t, valid) >= SubtypeThreshold {
				rep.Subtypes = append(rep.Subtypes, t)
			}
		}
	}

	if e := a.extrema[rep.TypeName]; e.set {
		lo, hi := e.min, e.max
		rep.MinValue, rep.MaxValue = &lo, &hi
	}
	return rep
}

func (a *Accumulator) confidence(t SemanticType, valid int) float64 {
	return float64(a.matches[t]) / float64(valid)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
