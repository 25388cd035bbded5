// Package timecodec converts between the time strings a user types into
// a trim form and a number of seconds, and checks a trim range against
// the length of the loaded clip.
//
// Three textual shapes are accepted:
//
// 	SS
// 	MM:SS
// 	HH:MM:SS
//
// Seconds are float64 throughout. Formatting never fails: out of domain
// input is clamped to a zero time string. Parsing and validation report
// failure through errors, never through a zero value.
//
// All functions are pure and safe for concurrent use.
package timecodec
