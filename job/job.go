package job

import (
	"time"

	"github.com/cbsinteractive/pkg/timecode"
	"github.com/gofrs/uuid"

	"github.com/cbsinteractive/clip-trimmer/timecodec"
)

// State is the state of a cut job.
type State string

const (
	StateQueued   = State("queued")
	StateStarted  = State("started")
	StateFinished = State("finished")
	StateFailed   = State("failed")
)

// Job is a request to cut Range out of Input
type Job struct {
	ID    string         `json:"id"`
	Input string         `json:"input"`
	Notes string         `json:"notes,omitempty"`
	Range timecode.Range `json:"range"`

	State State  `json:"state"`
	Msg   string `json:"msg,omitempty"`

	Output string  `json:"output,omitempty"`
	Size   int64   `json:"size,omitempty"`
	Source float64 `json:"sourceDuration,omitempty"`

	CreatedAt  time.Time `json:"createdAt"`
	FinishedAt time.Time `json:"finishedAt,omitempty"`
}

// New returns a queued job with a fresh id
func New(input string, r timecode.Range, notes string) (*Job, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Job{
		ID:        id.String(),
		Input:     input,
		Notes:     notes,
		Range:     r,
		State:     StateQueued,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ValidID reports whether id could have been produced by New
func ValidID(id string) bool {
	_, err := uuid.FromString(id)
	return err == nil
}

// Duration is the length of the requested range in seconds
func (j *Job) Duration() float64 {
	return timecodec.Duration(j.Range[0], j.Range[1])
}

func (j *Job) Start() {
	j.State = StateStarted
}

// Finish marks the job done with the produced file
func (j *Job) Finish(output string, size int64, source float64) {
	j.State = StateFinished
	j.Output = output
	j.Size = size
	j.Source = source
	j.Msg = ""
	j.FinishedAt = time.Now().UTC()
}

// Fail marks the job failed with a user facing message
func (j *Job) Fail(msg string) {
	j.State = StateFailed
	j.Msg = msg
	j.FinishedAt = time.Now().UTC()
}

// Done reports whether the job reached a terminal state
func (j *Job) Done() bool {
	return j.State == StateFinished || j.State == StateFailed
}
