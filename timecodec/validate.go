package timecodec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cbsinteractive/pkg/timecode"
)

// Range validation failures. The text of each is the English message
// shown to the user; see Codec.Message for other languages.
var (
	ErrNegativeStart        = errors.New("start time cannot be negative")
	ErrEndNotAfterStart     = errors.New("end time must be greater than start time")
	ErrStartExceedsDuration = errors.New("start time exceeds video duration")
	ErrEndExceedsDuration   = errors.New("end time exceeds video duration")
)

// Validation is the outcome of ValidateRange. Err is nil iff Valid.
type Validation struct {
	Valid bool
	Err   error
}

// Codec renders validation messages and duration descriptions in a
// particular Locale. The zero value uses English.
type Codec struct {
	Locale Locale
}

// New returns a Codec for the named locale, falling back to English
func New(locale string) Codec {
	l, ok := LookupLocale(locale)
	if !ok {
		l = English
	}
	return Codec{Locale: l}
}

// Text returns the locale in effect
func (c Codec) Text() Locale {
	if c.Locale.Name == "" {
		return English
	}
	return c.Locale
}

// ValidateRange checks a (start, end) pair against the clip duration.
// Checks run in order and the first failure is reported. The duration
// itself is assumed to be valid.
func ValidateRange(start, end, duration float64) Validation {
	switch {
	case start < 0:
		return Validation{Err: ErrNegativeStart}
	case end <= start:
		return Validation{Err: ErrEndNotAfterStart}
	case start > duration:
		return Validation{Err: ErrStartExceedsDuration}
	case end > duration:
		return Validation{Err: ErrEndExceedsDuration}
	}
	return Validation{Valid: true}
}

// Message returns the user facing text for err in the codec's locale.
// Errors that are not range failures are returned as err.Error().
func (c Codec) Message(err error) string {
	if err == nil {
		return ""
	}
	l := c.Text()
	switch {
	case errors.Is(err, ErrNegativeStart):
		return l.NegativeStart
	case errors.Is(err, ErrEndNotAfterStart):
		return l.EndNotAfterStart
	case errors.Is(err, ErrStartExceedsDuration):
		return l.StartExceedsDuration
	case errors.Is(err, ErrEndExceedsDuration):
		return l.EndExceedsDuration
	}
	return err.Error()
}

// Range validates the pair and returns it as a timecode.Range
func Range(start, end, duration float64) (timecode.Range, error) {
	if v := ValidateRange(start, end, duration); !v.Valid {
		return timecode.Range{}, v.Err
	}
	return timecode.Range{start, end}, nil
}

// Describe renders the span between start and end in English
func Describe(start, end float64) string {
	return Codec{}.Describe(start, end)
}

// Describe renders the span between start and end using the largest
// units that apply. Zero components are left out, except that seconds
// are always shown when there are no hours or minutes. An empty or
// reversed span yields the locale's invalid span text.
func (c Codec) Describe(start, end float64) string {
	l := c.Text()
	d := Duration(start, end)
	if d == 0 {
		return l.InvalidSpan
	}
	h, m, s := split(d)

	var b strings.Builder
	if h > 0 {
		fmt.Fprintf(&b, "%.0f%s", h, l.Hour)
	}
	if m > 0 {
		fmt.Fprintf(&b, "%d%s", m, l.Minute)
	}
	if s > 0 || b.Len() == 0 {
		fmt.Fprintf(&b, "%d%s", s, l.Second)
	}
	return b.String()
}
