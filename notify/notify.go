// Package notify delivers user facing messages, such as a rejected trim
// range, and reports unexpected errors. Components receive a Notifier or
// Reporter explicitly; there is no package level instance.
package notify

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

const defaultFlushTimeout = time.Second * 5

// Notifier shows a short message to the user
type Notifier interface {
	Notify(msg string)
}

// Reporter sends exceptions to an external source
type Reporter interface {
	ReportException(err error)
}

// Nop discards everything. It is the default for both interfaces.
type Nop struct{}

func (Nop) Notify(string)         {}
func (Nop) ReportException(error) {}

// Log writes notifications and exceptions to a logrus logger
type Log struct {
	Logger logrus.FieldLogger
}

func (l Log) Notify(msg string) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithField("notify", true).Warn(msg)
}

func (l Log) ReportException(err error) {
	if l.Logger == nil || err == nil {
		return
	}
	l.Logger.WithError(err).Error("exception")
}

// Sentry sends notifications and exceptions to Sentry. Notifications are
// captured as info level messages.
type Sentry struct {
	hub *sentry.Hub
}

// NewSentry initializes the Sentry client for dsn and env
func NewSentry(dsn, env string) (*Sentry, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{Dsn: dsn, Environment: env})
	if err != nil {
		return nil, err
	}
	return &Sentry{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (s *Sentry) Notify(msg string) {
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelInfo)
		s.hub.CaptureMessage(msg)
	})
}

// ReportException will send err to Sentry and wait for delivery
func (s *Sentry) ReportException(err error) {
	s.hub.CaptureException(err)
	s.hub.Flush(defaultFlushTimeout)
}

// Multi fans a notification out to every member
type Multi []Notifier

func (m Multi) Notify(msg string) {
	for _, n := range m {
		if n != nil {
			n.Notify(msg)
		}
	}
}

// Reporters fans an exception out to every member
type Reporters []Reporter

func (r Reporters) ReportException(err error) {
	for _, rep := range r {
		if rep != nil {
			rep.ReportException(err)
		}
	}
}
