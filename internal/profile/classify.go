package profile

import (
	"net/netip"
	"strings"
	"time"
)

// BooleanLiterals is the closed, case-insensitive set recognized as Boolean.
var BooleanLiterals = []string{"true", "false", "1", "0", "yes", "no"}

// DateLayouts are the accepted Date formats, tried in order.
var DateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006"}

var dateTimeLayouts = func() []string {
	var out []string
	for _, sep := range []string{"T", " "} {
		for _, clock := range []string{"15:04", "15:04:05"} {
			for _, zone := range []string{"", "Z07:00", "-0700"} {
				out = append(out, "2006-01-02"+sep+clock+zone)
			}
		}
	}
	return out
}()

// Classify returns every non-null type the value matches. String is always
// present. Callers separate empty values as Null before calling.
func Classify(value string) TypeSet {
	var s TypeSet
	if IsInteger(value) {
		s = s.with(Integer)
	}
	if IsFloat(value) {
		s = s.with(Float)
	}
	if IsBoolean(value) {
		s = s.with(Boolean)
	}
	if IsDate(value) {
		s = s.with(Date)
	}
	if IsDateTime(value) {
		s = s.with(DateTime)
	}
	if IsTime(value) {
		s = s.with(Time)
	}
	if IsEmail(value) {
		s = s.with(Email)
	}
	if IsURL(value) {
		s = s.with(URL)
	}
	if IsIP(value) {
		s = s.with(IP)
	}
	return s.with(String)
}

// IsInteger: optional sign followed by one or more ASCII digits.
func IsInteger(v string) bool {
	v = trimSign(v)
	return v != "" && allDigits(v)
}

// IsFloat accepts decimal literals with an optional fraction and exponent.
// Every integer literal is also a float literal.
func IsFloat(v string) bool {
	v = trimSign(v)
	mantissa, exp := v, ""
	if i := strings.IndexAny(v, "eE"); i >= 0 {
		mantissa, exp = v[:i], v[i+1:]
		exp = trimSign(exp)
		if exp == "" || !allDigits(exp) {
			return false
		}
	}
	intPart, frac, _ := strings.Cut(mantissa, ".")
	if intPart == "" && frac == "" {
		return false
	}
	return allDigits(intPart) && allDigits(frac)
}

func IsBoolean(v string) bool {
	for _, lit := range BooleanLiterals {
		if strings.EqualFold(v, lit) {
			return true
		}
	}
	return false
}

func IsDate(v string) bool {
	_, ok := parseDate(v)
	return ok
}

func IsDateTime(v string) bool {
	_, ok := parseDateTime(v)
	return ok
}

// IsTime: HH:MM[:SS[.fraction]] with two-digit fields.
func IsTime(v string) bool {
	_, ok := parseClock(v)
	return ok
}

func IsEmail(v string) bool {
	if hasSpace(v) {
		return false
	}
	local, domain, ok := strings.Cut(v, "@")
	if !ok || local == "" || strings.Contains(domain, "@") || !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}

func IsURL(v string) bool {
	if hasSpace(v) {
		return false
	}
	scheme, rest, ok := strings.Cut(v, "://")
	if !ok {
		return false
	}
	switch strings.ToLower(scheme) {
	case "http", "https", "ftp":
	default:
		return false
	}
	authority := rest
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		authority = rest[:i]
	}
	return authority != ""
}

// IsIP accepts IPv4 dotted quads and IPv6 addresses without a zone.
func IsIP(v string) bool {
	if isIPv4(v) {
		return true
	}
	if !strings.Contains(v, ":") {
		return false
	}
	addr, err := netip.ParseAddr(v)
	return err == nil && addr.Is6() && addr.Zone() == ""
}

func isIPv4(v string) bool {
	parts := strings.Split(v, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if len(p) == 0 || len(p) > 3 || !allDigits(p) {
			return false
		}
		n := 0
		for i := 0; i < len(p); i++ {
			n = n*10 + int(p[i]-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}

func parseDate(v string) (time.Time, bool) {
	if len(v) != 10 {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDateTime(v string) (time.Time, bool) {
	if len(v) < 16 || (v[10] != 'T' && v[10] != ' ') {
		return time.Time{}, false
	}
	if _, ok := parseClock(v[11:16]); !ok {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseClock returns the offset into the day for HH:MM[:SS[.fraction]].
func parseClock(v string) (time.Duration, bool) {
	if len(v) < 5 || v[2] != ':' {
		return 0, false
	}
	h, ok1 := twoDigits(v[0:2])
	m, ok2 := twoDigits(v[3:5])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, false
	}
	d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
	rest := v[5:]
	if rest == "" {
		return d, true
	}
	if len(rest) < 3 || rest[0] != ':' {
		return 0, false
	}
	s, ok := twoDigits(rest[1:3])
	if !ok || s > 59 {
		return 0, false
	}
	d += time.Duration(s) * time.Second
	rest = rest[3:]
	if rest == "" {
		return d, true
	}
	if rest[0] != '.' || len(rest) == 1 || !allDigits(rest[1:]) {
		return 0, false
	}
	scale := time.Second
	for i := 1; i < len(rest) && scale > time.Nanosecond; i++ {
		scale /= 10
		d += time.Duration(rest[i]-'0') * scale
	}
	return d, true
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || !allDigits(s) {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func trimSign(v string) string {
	if v != "" && (v[0] == '+' || v[0] == '-') {
		return v[1:]
	}
	return v
}

// allDigits reports whether s consists of ASCII digits only; "" is true.
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
	}) >= 0
}
