package test

import (
	"errors"
	"testing"
)

// AssertWantErr checks err against the expected error text. It returns
// true when an error was received or expected, so callers can stop
// checking the result.
func AssertWantErr(err error, wantErr, caller string, t *testing.T) bool {
	t.Helper()
	if err != nil {
		if wantErr != err.Error() {
			t.Errorf("%s error = %v, wantErr %q", caller, err, wantErr)
		}

		return true
	} else if wantErr != "" {
		t.Errorf("%s expected error %q, did not receive an error", caller, wantErr)
		return true
	}

	return false
}

// AssertErrIs is like AssertWantErr but matches the error chain against
// a sentinel with errors.Is. A nil target means no error is expected.
func AssertErrIs(err, target error, caller string, t *testing.T) bool {
	t.Helper()
	if err != nil {
		if target == nil || !errors.Is(err, target) {
			t.Errorf("%s error = %v, want %v", caller, err, target)
		}

		return true
	} else if target != nil {
		t.Errorf("%s expected error %v, did not receive an error", caller, target)
		return true
	}

	return false
}
