// Package trimming is an http client for the clip trimming service
package trimming

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cbsinteractive/pkg/timecode"
)

const (
	defaultTimeout = 5 * time.Minute
	defaultBaseURL = "http://localhost:8080"
)

// VideoInfo is the result of probing a clip
type VideoInfo struct {
	Duration        float64 `json:"duration"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	FPS             float64 `json:"fps"`
	Codec           string  `json:"codec"`
	Format          string  `json:"format"`
	DurationInput   string  `json:"durationInput"`
	DurationDisplay string  `json:"durationDisplay"`
}

// Validation is the service's verdict on a start and end field pair
type Validation struct {
	Valid       bool     `json:"valid"`
	Error       *string  `json:"error"`
	Start       *float64 `json:"start"`
	End         *float64 `json:"end"`
	StartInput  string   `json:"startInput,omitempty"`
	EndInput    string   `json:"endInput,omitempty"`
	Duration    float64  `json:"duration"`
	Description string   `json:"description"`
}

// CutRequest asks for a new clip cut from Input between Start and End,
// both in [[HH:]MM:]SS form
type CutRequest struct {
	Input string `json:"input"`
	Start string `json:"start"`
	End   string `json:"end"`
	Notes string `json:"notes,omitempty"`
}

// Job is a cut job as stored by the service
type Job struct {
	ID         string         `json:"id"`
	Input      string         `json:"input"`
	Notes      string         `json:"notes,omitempty"`
	Range      timecode.Range `json:"range"`
	State      string         `json:"state"`
	Msg        string         `json:"msg,omitempty"`
	Output     string         `json:"output,omitempty"`
	Size       int64          `json:"size,omitempty"`
	Source     float64        `json:"sourceDuration,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	FinishedAt time.Time      `json:"finishedAt,omitempty"`
}

type Client struct {
	Base   *url.URL
	Client *http.Client
}

// New returns a client for the service at base, or the default local
// address when base is empty
func New(base string) (*Client, error) {
	if base == "" {
		base = defaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	c := &Client{Base: u}
	c.ensure()
	return c, nil
}

// Probe returns the media properties of the file at path on the
// service's host
func (c *Client) Probe(ctx context.Context, path string) (VideoInfo, error) {
	var info VideoInfo
	err := c.do(ctx, http.MethodGet, "/probe?path="+url.QueryEscape(path), nil, &info)
	return info, err
}

// Validate checks a start and end field against a clip duration
func (c *Client) Validate(ctx context.Context, start, end string, duration float64) (Validation, error) {
	req := struct {
		Start    string  `json:"start"`
		End      string  `json:"end"`
		Duration float64 `json:"duration"`
	}{start, end, duration}
	var v Validation
	err := c.do(ctx, http.MethodPost, "/validate", req, &v)
	return v, err
}

// Cut runs a cut job and returns it once finished. A job that failed
// is returned along with an *Error.
func (c *Client) Cut(ctx context.Context, req CutRequest) (Job, error) {
	var j Job
	err := c.do(ctx, http.MethodPost, "/cuts", req, &j)
	return j, err
}

// Job returns a single job
func (c *Client) Job(ctx context.Context, id string) (Job, error) {
	var j Job
	err := c.do(ctx, http.MethodGet, "/cuts/"+url.PathEscape(id), nil, &j)
	return j, err
}

// Jobs lists the most recent jobs, newest first. Zero means the
// service default.
func (c *Client) Jobs(ctx context.Context, limit int) ([]Job, error) {
	p := "/cuts"
	if limit > 0 {
		p += "?limit=" + strconv.Itoa(limit)
	}
	var jobs []Job
	err := c.do(ctx, http.MethodGet, p, nil, &jobs)
	return jobs, err
}

// Delete removes a job record. The clip it produced is left alone.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/cuts/"+url.PathEscape(id), nil, nil)
}

// Health reports whether the service can reach its media tools
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) ensure() {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: defaultTimeout}
	}
	if c.Base == nil {
		c.Base, _ = url.Parse(defaultBaseURL)
	}
}
