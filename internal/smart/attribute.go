package smart

import (
	"strconv"
	"strings"
)

// ParseAttribute turns one "<label>: <value>" line into an Attribute.
// It returns false when the line has no colon.
//
// The value is scanned for a leading integer (commas allowed as thousands
// separators) and a unit. A bracketed span such as "[910 GB]" always
// supplies the unit; otherwise the unit is the run of letters, '%' and '.'
// directly after the number, as in "29 Celsius" or "100%".
func ParseAttribute(line string) (Attribute, bool) {
	label, value, found := strings.Cut(line, ":")
	if !found {
		return Attribute{}, false
	}
	value = strings.TrimSpace(value)

	a := Attribute{
		Key: normalizeKey(strings.TrimSpace(label)),
		Raw: value,
	}

	if unit, ok := bracketContent(value); ok {
		if n, _, ok := leadingInt(value); ok {
			a.Value = &n
		}
		a.Unit = unit
		return a, true
	}

	if n, rest, ok := leadingInt(value); ok {
		a.Value = &n
		a.Unit = trailingUnit(rest)
	}
	return a, true
}

// normalizeKey lower-cases the label and replaces spaces with underscores.
// Other characters are left alone.
func normalizeKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

// bracketContent returns the text between the first '[' and the first ']'
// that follows it.
func bracketContent(s string) (string, bool) {
	open := strings.IndexByte(s, '[')
	if open < 0 {
		return "", false
	}
	end := strings.IndexByte(s[open+1:], ']')
	if end < 0 {
		return "", false
	}
	return s[open+1 : open+1+end], true
}

// leadingInt parses an optionally signed run of digits and commas at the
// start of s. It returns the value and the text after the run. ok is false
// when s does not start with a number or the number overflows int64.
func leadingInt(s string) (n int64, rest string, ok bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if i >= len(s) || !isDigit(s[i]) {
		return 0, s, false
	}
	start := i
	for i < len(s) && (isDigit(s[i]) || s[i] == ',') {
		i++
	}
	digits := s[:start] + strings.ReplaceAll(s[start:i], ",", "")
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, s[i:], false
	}
	return n, s[i:], true
}

// trailingUnit returns the run of letters, '%' and '.' after optional
// spaces. The run stops at the first other character, so "0x00" yields "x"
// and "35C," yields "C".
func trailingUnit(rest string) string {
	rest = strings.TrimLeft(rest, " \t")
	i := 0
	for i < len(rest) && isUnitChar(rest[i]) {
		i++
	}
	return rest[:i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isUnitChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '%' || c == '.'
}
