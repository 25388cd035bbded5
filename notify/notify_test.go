package notify

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type recorder []string

func (r *recorder) Notify(msg string) { *r = append(*r, msg) }

func TestMulti(t *testing.T) {
	var a, b recorder
	m := Multi{&a, nil, Nop{}, &b}
	m.Notify("end time exceeds video duration")
	m.Notify("start time cannot be negative")

	want := recorder{"end time exceeds video duration", "start time cannot be negative"}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("a (-want +have):\n%s", diff)
	}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("b (-want +have):\n%s", diff)
	}
}

func TestLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	l := Log{Logger: logger}

	l.Notify("end time must be greater than start time")
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("no entry logged")
	}
	if entry.Level != logrus.WarnLevel || entry.Message != "end time must be greater than start time" {
		t.Fatalf("have %v %q", entry.Level, entry.Message)
	}

	l.ReportException(errors.New("ffmpeg exited 1"))
	entry = hook.LastEntry()
	if entry.Level != logrus.ErrorLevel || entry.Data[logrus.ErrorKey].(error).Error() != "ffmpeg exited 1" {
		t.Fatalf("have %v %v", entry.Level, entry.Data)
	}

	l.ReportException(nil)
	if n := len(hook.AllEntries()); n != 2 {
		t.Fatalf("have %d entries, want 2", n)
	}
}

func TestLogWithoutLogger(t *testing.T) {
	// must not panic
	Log{}.Notify("x")
	Log{}.ReportException(errors.New("x"))
}

func TestSentryEmptyDSN(t *testing.T) {
	s, err := NewSentry("", "test")
	if err != nil {
		t.Fatal(err)
	}
	// an empty DSN disables transport; both calls are dropped locally
	s.Notify("start time exceeds video duration")
	s.ReportException(errors.New("boom"))
}

type errRecorder []error

func (r *errRecorder) ReportException(err error) { *r = append(*r, err) }

func TestReporters(t *testing.T) {
	var a errRecorder
	err := errors.New("redis: connection refused")
	Reporters{nil, &a, Nop{}}.ReportException(err)
	if len(a) != 1 || a[0] != err {
		t.Fatalf("have %v", a)
	}
}
