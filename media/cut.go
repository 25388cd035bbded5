package media

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cbsinteractive/pkg/timecode"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cbsinteractive/clip-trimmer/timecodec"
)

// CutResult describes a finished cut
type CutResult struct {
	Output string         `json:"output"`
	Range  timecode.Range `json:"range"`

	// Source is the duration of the input clip in seconds
	Source float64 `json:"sourceDuration"`
	Size   int64   `json:"size"`
}

// Cut copies [start, end) of input into the next versioned file beside it
// without re-encoding. The range is validated against the probed
// duration first; a rejected range is returned as one of the timecodec
// range errors.
func (c *Client) Cut(ctx context.Context, input string, start, end float64, notes string) (*CutResult, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	total, err := c.Duration(ctx, input)
	if err != nil {
		return nil, err
	}
	r, err := timecodec.Range(start, end, total)
	if err != nil {
		return nil, err
	}

	output, err := NextFilename(input, notes)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	need := EstimateOutputSize(fi.Size(), start, end, total)
	if err := c.CheckDiskSpace(filepath.Dir(output), need); err != nil {
		return nil, err
	}

	log := c.log.WithFields(logrus.Fields{
		"input":  input,
		"output": output,
		"range":  r.String(),
	})
	log.Info("cutting")

	_, err = c.run.Run(ctx, c.cfg.FFmpeg,
		"-ss", seconds(r[0]),
		"-i", input,
		"-t", seconds(r[1]-r[0]),
		"-c", "copy",
		"-avoid_negative_ts", "1",
		"-y",
		output,
	)
	if err != nil {
		return nil, errors.Wrap(err, "running ffmpeg")
	}

	ofi, err := os.Stat(output)
	if err != nil {
		return nil, errors.Wrap(ErrNoOutput, output)
	}
	log.WithField("size", ofi.Size()).Info("cut finished")
	return &CutResult{Output: output, Range: r, Source: total, Size: ofi.Size()}, nil
}

func seconds(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
