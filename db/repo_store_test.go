package db

import (
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cbsinteractive/pkg/timecode"
	"github.com/google/go-cmp/cmp"

	"github.com/cbsinteractive/clip-trimmer/config"
	"github.com/cbsinteractive/clip-trimmer/job"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewClient(config.Redis{Addr: mr.Addr()})
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func testJob(id string, age time.Duration) *job.Job {
	return &job.Job{
		ID:        id,
		Input:     "/clips/video.mp4",
		Range:     timecode.Range{5, 20},
		State:     job.StateFinished,
		Output:    "/clips/video_1.mp4",
		Size:      1024,
		Source:    60,
		CreatedAt: t0.Add(-age),
	}
}

func TestPutGet(t *testing.T) {
	c, mr := newStore(t)
	want := testJob("a", 0)
	if err := c.Put(want); err != nil {
		t.Fatal(err)
	}
	have, err := c.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Fatalf("job mismatch (-want +have):\n%s", diff)
	}
	if ttl := mr.TTL(jobPrefix + "a"); ttl <= 0 {
		t.Errorf("job key has no expiry: %v", ttl)
	}

	// a second put of the same job replaces it and keeps one index entry
	want.State = job.StateFailed
	if err := c.Put(want); err != nil {
		t.Fatal(err)
	}
	if have, _ := c.Get("a"); have.State != job.StateFailed {
		t.Errorf("state: have %q, want %q", have.State, job.StateFailed)
	}
	if members, _ := mr.ZMembers(jobIndex); len(members) != 1 {
		t.Errorf("index: have %v, want one entry", members)
	}
}

func TestGetMissing(t *testing.T) {
	c, _ := newStore(t)
	if _, err := c.Get("nope"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("have %v, want %v", err, ErrJobNotFound)
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		expired []string
		want    []string
	}{
		{"All", 10, nil, []string{"new", "mid", "old"}},
		{"Limited", 2, nil, []string{"new", "mid"}},
		{"One", 1, nil, []string{"new"}},
		{"Zero", 0, nil, nil},
		{"SkipsExpired", 10, []string{"mid"}, []string{"new", "old"}},
		{"AllExpired", 10, []string{"new", "mid", "old"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mr := newStore(t)
			// stored out of order; the index orders by creation time
			for _, j := range []*job.Job{testJob("mid", time.Minute), testJob("new", 0), testJob("old", time.Hour)} {
				if err := c.Put(j); err != nil {
					t.Fatal(err)
				}
			}
			for _, id := range tt.expired {
				mr.Del(jobPrefix + id)
			}

			jobs, err := c.List(tt.limit)
			if err != nil {
				t.Fatal(err)
			}
			var have []string
			if jobs != nil {
				have = []string{}
			}
			for _, j := range jobs {
				have = append(have, j.ID)
			}
			if diff := cmp.Diff(tt.want, have); diff != "" {
				t.Fatalf("ids mismatch (-want +have):\n%s", diff)
			}
		})
	}
}

func TestListEmpty(t *testing.T) {
	c, _ := newStore(t)
	jobs, err := c.List(5)
	if err != nil || len(jobs) != 0 {
		t.Fatalf("have %v %v, want nothing", jobs, err)
	}
}

func TestDelete(t *testing.T) {
	c, mr := newStore(t)
	for _, j := range []*job.Job{testJob("a", 0), testJob("b", time.Second)} {
		if err := c.Put(j); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(jobPrefix + "a") {
		t.Error("job key still present")
	}
	members, err := mr.ZMembers(jobIndex)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b"}, members); diff != "" {
		t.Errorf("index mismatch (-want +have):\n%s", diff)
	}
	if _, err := c.Get("a"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("have %v, want %v", err, ErrJobNotFound)
	}
	// deleting again is not an error
	if err := c.Delete("a"); err != nil {
		t.Fatal(err)
	}
}

func TestPing(t *testing.T) {
	c, mr := newStore(t)
	if err := c.Ping(); err != nil {
		t.Fatal(err)
	}
	mr.Close()
	if err := c.Ping(); err == nil {
		t.Fatal("ping succeeded against a stopped server")
	}
}
