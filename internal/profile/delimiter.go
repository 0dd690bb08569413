package profile

import "strings"

// DelimiterSampleLines is how many non-blank lines DetectDelimiter inspects.
const DelimiterSampleLines = 5

// DelimiterCandidates are tried in order; earlier entries win ties.
var DelimiterCandidates = []rune{',', ';', '\t', '|'}

// DetectDelimiter picks the candidate that splits every sampled line into the
// same number of fields (more than one), preferring the largest such count.
// It falls back to ',' when no candidate is consistent.
func DetectDelimiter(prefix string) rune {
	lines := sampleLines(prefix, DelimiterSampleLines)
	if len(lines) == 0 {
		return ','
	}
	best, bestCount := ',', 1
	for _, d := range DelimiterCandidates {
		sep := string(d)
		n := strings.Count(lines[0], sep) + 1
		if n <= 1 {
			continue
		}
		consistent := true
		for _, l := range lines[1:] {
			if strings.Count(l, sep)+1 != n {
				consistent = false
				break
			}
		}
		if consistent && n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func sampleLines(text string, limit int) []string {
	var out []string
	for len(text) > 0 && len(out) < limit {
		line := text
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, text = text[:i], text[i+1:]
		} else {
			text = ""
		}
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
