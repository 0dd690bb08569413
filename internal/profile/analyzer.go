package profile

import (
	"io"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// classifyCacheSize bounds the per-call classification memo.
const classifyCacheSize = 4096

// Config controls an Analyzer. The zero value analyzes every value and
// detects the delimiter.
type Config struct {
	// SampleSize caps analyzed values per column; nil means no cap.
	SampleSize *int
	// Delimiter overrides detection when non-zero.
	Delimiter rune
	// DistinctLimit is the exact-uniqueness budget per column; 0 means
	// DefaultDistinctLimit.
	DistinctLimit int
}

// Validate rejects configurations that Analyze cannot honor.
func (c Config) Validate() error {
	if c.SampleSize != nil && *c.SampleSize <= 0 {
		return &InvalidConfigurationError{Field: "sample_size", Reason: "must be a positive integer"}
	}
	switch c.Delimiter {
	case quote, '\r', '\n':
		return &InvalidConfigurationError{Field: "delimiter", Reason: "cannot be a quote or line terminator"}
	}
	if c.DistinctLimit < 0 {
		return &InvalidConfigurationError{Field: "distinct_limit", Reason: "must not be negative"}
	}
	return nil
}

// Analyzer profiles CSV documents. It holds only its immutable configuration
// and is safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer validates cfg and returns an Analyzer built from it.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.SampleSize != nil {
		n := *cfg.SampleSize
		cfg.SampleSize = &n
	}
	return &Analyzer{cfg: cfg}, nil
}

// Analyze is shorthand for NewAnalyzer(cfg) followed by Analyze(text).
func Analyze(text string, cfg Config) (*AnalysisReport, error) {
	a, err := NewAnalyzer(cfg)
	if err != nil {
		return nil, err
	}
	return a.Analyze(text)
}

// Config returns a copy of the analyzer's configuration.
func (a *Analyzer) Config() Config {
	c := a.cfg
	if c.SampleSize != nil {
		n := *c.SampleSize
		c.SampleSize = &n
	}
	return c
}

// Analyze profiles text in a single pass. The first row is the header. It
// returns no partial report on error.
func (a *Analyzer) Analyze(text string) (*AnalysisReport, error) {
	if text == "" {
		return nil, &EmptyInputError{}
	}
	delim := a.cfg.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(text)
	}

	tok := NewTokenizer(text, delim)
	header, err := tok.Next()
	if err == io.EOF {
		return nil, &EmptyInputError{}
	}
	if err != nil {
		return nil, err
	}

	cols := make([]*Accumulator, len(header))
	for i, h := range header {
		cols[i] = NewAccumulator(strings.TrimSpace(h), a.cfg.DistinctLimit)
	}
	samp := sampler{limit: a.cfg.SampleSize}
	memo := newClassifier()

	rows := 0
	for {
		row, err := tok.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows++
		for i, acc := range cols {
			if i >= len(row) {
				break
			}
			if !samp.admit(acc.Analyzed()) {
				acc.Skip()
				continue
			}
			v := strings.TrimSpace(row[i])
			if v == "" {
				acc.Add(v, 0)
				continue
			}
			acc.Add(v, memo.classify(v))
		}
	}

	rep := &AnalysisReport{
		RowCount:          rows,
		ColumnCount:       len(cols),
		SampleSize:        a.Config().SampleSize,
		DetectedDelimiter: string(delim),
		Columns:           make([]ColumnReport, len(cols)),
	}
	for i, acc := range cols {
		rep.Columns[i] = acc.Finalize()
	}
	return rep, nil
}

// sampler decides whether a column still has room in its sampling cap.
type sampler struct {
	limit *int
}

func (s sampler) admit(analyzed int) bool {
	return s.limit == nil || analyzed < *s.limit
}

// classifier memoizes Classify for repeated raw values within one call.
type classifier struct {
	cache *lru.Cache[string, TypeSet]
}

func newClassifier() *classifier {
	c, err := lru.New[string, TypeSet](classifyCacheSize)
	if err != nil {
		return &classifier{}
	}
	return &classifier{cache: c}
}

func (c *classifier) classify(v string) TypeSet {
	if c.cache == nil {
		return Classify(v)
	}
	if s, ok := c.cache.Get(v); ok {
		return s
	}
	s := Classify(v)
	c.cache.Add(v, s)
	return s
}
