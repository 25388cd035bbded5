package media

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/cbsinteractive/pkg/video"
	"github.com/pkg/errors"
)

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
}

// Probe returns information about the first video stream in path
func (c *Client) Probe(ctx context.Context, path string) (*VideoInfo, error) {
	out, err := c.probe(ctx, path, "-show_format", "-show_streams")
	if err != nil {
		return nil, err
	}
	var vs *probeStream
	for i := range out.Streams {
		if out.Streams[i].CodecType == "video" {
			vs = &out.Streams[i]
			break
		}
	}
	if vs == nil {
		return nil, ErrNoVideo
	}

	fr, fps := ParseFrameRate(vs.RFrameRate)
	info := &VideoInfo{
		Width:     vs.Width,
		Height:    vs.Height,
		FPS:       fps,
		Framerate: fr,
		Codec:     orUnknown(vs.CodecName),
		Format:    orUnknown(out.Format.FormatName),
	}
	if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
		info.Duration = d
	}
	c.log.WithField("path", path).WithField("duration", info.Duration).Debug("probed")
	return info, nil
}

// Duration returns the container duration of path in seconds
func (c *Client) Duration(ctx context.Context, path string) (float64, error) {
	out, err := c.probe(ctx, path, "-show_format")
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return 0, ErrNoDuration
	}
	return d, nil
}

func (c *Client) probe(ctx context.Context, path string, show ...string) (*probeOutput, error) {
	if err := checkInput(path); err != nil {
		return nil, err
	}
	args := append([]string{"-v", "quiet", "-print_format", "json"}, show...)
	data, err := c.run.Run(ctx, c.cfg.FFprobe, append(args, path)...)
	if err != nil {
		return nil, errors.Wrap(err, "running ffprobe")
	}
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "decoding ffprobe output")
	}
	return &out, nil
}

// checkInput ensures path names an existing regular file
func checkInput(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return errors.Wrap(ErrNotFile, path)
	}
	return nil
}

// ParseFrameRate parses a rational frame rate such as "30000/1001".
// Malformed input or a zero denominator yields zero values.
func ParseFrameRate(s string) (video.Framerate, float64) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return video.Framerate{}, 0
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return video.Framerate{}, 0
	}
	var fr video.Framerate
	n, err1 := strconv.Atoi(parts[0])
	d, err2 := strconv.Atoi(parts[1])
	if err1 == nil && err2 == nil {
		fr = video.Framerate{Numerator: n, Denominator: d}
	}
	return fr, num / den
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
