package media

import (
	"context"
	"errors"
	"io/ioutil"
	"strings"
	"sync"
)

type call struct {
	name string
	args []string
}

// fakeRunner answers ffprobe with canned JSON and makes ffmpeg write the
// output file named by its last argument
type fakeRunner struct {
	mu    sync.Mutex
	calls []call

	probe      string
	probeErr   error
	ffmpegErr  error
	skipOutput bool
	missing    map[string]bool
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{name, args})
	f.mu.Unlock()

	if f.missing[name] {
		return nil, &CommandError{Name: name, Err: errors.New("executable file not found in $PATH")}
	}
	if len(args) == 1 && args[0] == "-version" {
		return []byte(name + " version 6.0"), nil
	}
	switch {
	case strings.HasSuffix(name, "ffprobe"):
		return []byte(f.probe), f.probeErr
	case strings.HasSuffix(name, "ffmpeg"):
		if f.ffmpegErr != nil {
			return nil, &CommandError{Name: name, Stderr: "Invalid data found when processing input", Err: f.ffmpegErr}
		}
		if !f.skipOutput {
			out := args[len(args)-1]
			if err := ioutil.WriteFile(out, []byte("cut"), 0644); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	return nil, errors.New("unexpected command " + name)
}

func (f *fakeRunner) last(name string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].name == name {
			return f.calls[i].args
		}
	}
	return nil
}
