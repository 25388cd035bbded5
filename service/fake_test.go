package service

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/cbsinteractive/clip-trimmer/db"
	"github.com/cbsinteractive/clip-trimmer/job"
	"github.com/cbsinteractive/clip-trimmer/media"
	"github.com/cbsinteractive/clip-trimmer/timecodec"
)

type memRepo struct {
	mu   sync.Mutex
	jobs map[string]job.Job
	puts int
}

func newMemRepo() *memRepo { return &memRepo{jobs: map[string]job.Job{}} }

func (m *memRepo) Put(j *job.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = *j
	m.puts++
	return nil
}

func (m *memRepo) Get(id string) (*job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, db.ErrJobNotFound
	}
	return &j, nil
}

func (m *memRepo) List(limit int) ([]*job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*job.Job
	for _, j := range m.jobs {
		j := j
		out = append(out, &j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, id)
	return nil
}

// fakeMedia serves clips from a fixed table of durations
type fakeMedia struct {
	clips    map[string]float64
	cutErr   error
	checkErr error
}

func (f *fakeMedia) Probe(_ context.Context, path string) (*media.VideoInfo, error) {
	d, ok := f.clips[path]
	if !ok {
		return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}
	return &media.VideoInfo{Duration: d, Width: 1280, Height: 720, FPS: 25, Codec: "h264", Format: "mp4"}, nil
}

func (f *fakeMedia) Cut(ctx context.Context, input string, start, end float64, notes string) (*media.CutResult, error) {
	d, ok := f.clips[input]
	if !ok {
		return nil, &os.PathError{Op: "stat", Path: input, Err: os.ErrNotExist}
	}
	r, err := timecodec.Range(start, end, d)
	if err != nil {
		return nil, err
	}
	if f.cutErr != nil {
		return nil, f.cutErr
	}
	out, err := media.NextFilename(input, notes)
	if err != nil {
		return nil, err
	}
	return &media.CutResult{Output: out, Range: r, Source: d, Size: 42}, nil
}

func (f *fakeMedia) Check(context.Context) error { return f.checkErr }

type recorder struct {
	mu   sync.Mutex
	msgs []string
	errs []error
}

func (r *recorder) Notify(msg string) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *recorder) ReportException(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}
