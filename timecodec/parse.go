package timecodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned for empty or whitespace-only input. It means
	// "no value" rather than a malformed one.
	ErrEmpty = errors.New("empty time")

	// ErrSyntax is returned when a segment is not a base-10 integer
	ErrSyntax = errors.New("invalid time segment")

	// ErrRange is returned when a field is negative, or minutes or
	// seconds are 60 or more where a higher unit is present
	ErrRange = errors.New("time field out of range")

	// ErrShape is returned when the input has more than three segments
	ErrShape = errors.New("too many time segments")
)

// ParseError records a failed parse and the reason for it
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse time %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse converts a time string in SS, MM:SS or HH:MM:SS form into seconds.
// Surrounding whitespace is ignored. Every segment must be a whole
// base-10 integer.
func Parse(s string) (float64, error) {
	return parse(s, strconv.Atoi)
}

// ParseLenient is like Parse but accepts a segment with trailing garbage
// after a numeric prefix, so "12abc:30" is 12 minutes 30 seconds. It
// exists for callers that must accept what older form fields produced.
func ParseLenient(s string) (float64, error) {
	return parse(s, leadingInt)
}

// Valid reports whether s parses
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// ParseOr returns the parsed value of s, or def if s does not parse
func ParseOr(s string, def float64) float64 {
	v, err := Parse(s)
	if err != nil {
		return def
	}
	return v
}

func parse(s string, atoi func(string) (int, error)) (float64, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, &ParseError{Input: s, Err: ErrEmpty}
	}
	seg := strings.Split(in, ":")
	if len(seg) > 3 {
		return 0, &ParseError{Input: s, Err: ErrShape}
	}
	n := make([]int, len(seg))
	for i, p := range seg {
		v, err := atoi(p)
		if err != nil {
			return 0, &ParseError{Input: s, Err: ErrSyntax}
		}
		n[i] = v
	}

	var h, m, sec int
	switch len(n) {
	case 1:
		sec = n[0]
	case 2:
		m, sec = n[0], n[1]
		if sec >= 60 {
			return 0, &ParseError{Input: s, Err: ErrRange}
		}
	case 3:
		h, m, sec = n[0], n[1], n[2]
		if m >= 60 || sec >= 60 {
			return 0, &ParseError{Input: s, Err: ErrRange}
		}
	}
	if h < 0 || m < 0 || sec < 0 {
		return 0, &ParseError{Input: s, Err: ErrRange}
	}
	return float64(h)*3600 + float64(m)*60 + float64(sec), nil
}

// leadingInt parses the longest signed integer prefix of s, skipping
// leading whitespace. It fails only when there are no digits.
func leadingInt(s string) (int, error) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s[:j])
}
