package timecodec

import (
	"fmt"
	"math"
)

// split breaks non-negative seconds into whole hours, minutes and seconds,
// truncating any fraction. Hours stay a float so that very large input
// does not wrap.
func split(seconds float64) (h float64, m, s int64) {
	h = math.Floor(seconds / 3600)
	m = int64(math.Floor(math.Mod(seconds, 3600) / 60))
	s = int64(math.Floor(math.Mod(seconds, 60)))
	return h, m, s
}

// clamped reports whether seconds is outside the domain formatting accepts.
// NaN and infinities are treated like negative input.
func clamped(seconds float64) bool {
	return !(seconds >= 0) || math.IsInf(seconds, 1)
}

// FormatInput renders seconds for an editable field: H:MM:SS when there
// is at least one hour, M:SS otherwise. Negative input yields "00:00".
func FormatInput(seconds float64) string {
	if clamped(seconds) {
		return "00:00"
	}
	h, m, s := split(seconds)
	if h > 0 {
		return fmt.Sprintf("%.0f:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatDisplay renders seconds as HH:MM:SS, optionally followed by .mmm
// milliseconds. Hours wider than two digits are not truncated. Negative
// input yields "00:00:00".
func FormatDisplay(seconds float64, withMillis bool) string {
	if clamped(seconds) {
		return "00:00:00"
	}
	h, m, s := split(seconds)
	out := fmt.Sprintf("%02.0f:%02d:%02d", h, m, s)
	if withMillis {
		ms := int64(math.Floor(math.Mod(seconds, 1) * 1000))
		out += fmt.Sprintf(".%03d", ms)
	}
	return out
}

// Duration returns end-start, or zero when the pair is empty or reversed
func Duration(start, end float64) float64 {
	return math.Max(0, end-start)
}
