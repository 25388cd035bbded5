// Package media wraps the ffprobe and ffmpeg command line tools: probing
// a clip, cutting a range out of it into a versioned sibling file, and
// the filename and disk space checks that go with it.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/cbsinteractive/pkg/video"
	"github.com/sirupsen/logrus"

	"github.com/cbsinteractive/clip-trimmer/config"
)

var (
	ErrNotInstalled = errors.New("ffmpeg or ffprobe is not installed")
	ErrNoVideo      = errors.New("no video stream found")
	ErrNoDuration   = errors.New("could not determine clip duration")
	ErrNotFile      = errors.New("path is not a regular file")
	ErrNoOutput     = errors.New("cut finished but the output file is missing")
)

// VideoInfo describes the first video stream of a clip and its container
type VideoInfo struct {
	Duration  float64         `json:"duration"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	FPS       float64         `json:"fps"`
	Framerate video.Framerate `json:"framerate"`
	Codec     string          `json:"codec"`
	Format    string          `json:"format"`
}

// Runner runs an external command and returns what it wrote to stdout
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandError is returned when an external command fails
type CommandError struct {
	Name   string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Name, e.Err, e.Stderr)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), &CommandError{Name: name, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return stdout.Bytes(), nil
}

// Client probes and cuts clips with the configured tools
type Client struct {
	cfg config.Media
	run Runner
	log logrus.FieldLogger

	// free reports the bytes available to the filesystem holding dir
	free func(dir string) (uint64, error)
}

// NewClient returns a Client. A nil runner uses ExecRunner and a nil
// logger discards output.
func NewClient(cfg config.Media, run Runner, log logrus.FieldLogger) *Client {
	if run == nil {
		run = ExecRunner{}
	}
	if log == nil {
		l := logrus.New()
		l.Out = nopWriter{}
		log = l
	}
	if cfg.FFmpeg == "" {
		cfg.FFmpeg = "ffmpeg"
	}
	if cfg.FFprobe == "" {
		cfg.FFprobe = "ffprobe"
	}
	if cfg.FallbackFreeBytes == 0 {
		cfg.FallbackFreeBytes = 5 << 30
	}
	return &Client{cfg: cfg, run: run, log: log, free: freeSpace}
}

// Check returns nil if both ffmpeg and ffprobe can be run
func (c *Client) Check(ctx context.Context) error {
	if _, err := c.run.Run(ctx, c.cfg.FFmpeg, "-version"); err != nil {
		return fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	if _, err := c.run.Run(ctx, c.cfg.FFprobe, "-version"); err != nil {
		return fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	return nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
