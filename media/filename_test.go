package media

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		in   string
		want Filename
	}{
		{"1.mp4", Filename{Base: "1", Ext: "mp4"}},
		{"1_2.mp4", Filename{Base: "1_2", Ext: "mp4"}},
		{"video.mp4", Filename{Base: "video", Ext: "mp4"}},
		{"video_1.mp4", Filename{Base: "video", Ext: "mp4", Versions: []int{1}}},
		{"video_1_2.mp4", Filename{Base: "video", Ext: "mp4", Versions: []int{1, 2}}},
		{"my_clip_3.mov", Filename{Base: "my_clip", Ext: "mov", Versions: []int{3}}},
		{"video_1_intro.mp4", Filename{Base: "video_1_intro", Ext: "mp4"}},
		{"/media/in/video", Filename{Base: "video", Ext: "mp4"}},
		{"archive.tar.mkv", Filename{Base: "archive.tar", Ext: "mkv"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			have, err := ParseFilename(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, have); diff != "" {
				t.Fatalf("mismatch (-want +have):\n%s", diff)
			}
		})
	}
}

func TestParseFilenameOverflow(t *testing.T) {
	if _, err := ParseFilename("video_99999999999999999999999.mp4"); err == nil {
		t.Fatal("expected an error for an unrepresentable version")
	}
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := ioutil.WriteFile(filepath.Join(dir, n), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNextFilename(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		input    string
		notes    string
		want     string
	}{
		{"FirstVersion", nil, "video.mp4", "", "video_1.mp4"},
		{"AfterExisting", []string{"video_1.mp4", "video_3_intro.mp4", "video_2.mov"}, "video.mp4", "", "video_4.mp4"},
		{"Nested", []string{"video_1.mp4"}, "video_1.mp4", "", "video_1_1.mp4"},
		{"NestedAfterExisting", []string{"video_1.mp4", "video_1_1.mp4", "video_1_2_x.mp4"}, "video_1.mp4", "", "video_1_3.mp4"},
		{"Notes", nil, "video.mp4", "best part", "video_1_best part.mp4"},
		{"NotesSanitized", nil, "video.mp4", " a/b_c? ", "video_1_a-b-c-.mp4"},
		{"NotesBlank", nil, "video.mp4", "   ", "video_1.mp4"},
		{"NumericBase", []string{"1_1.mp4"}, "1.mp4", "", "1_2.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.existing...)
			have, err := NextFilename(filepath.Join(dir, tt.input), tt.notes)
			if err != nil {
				t.Fatal(err)
			}
			if want := filepath.Join(dir, tt.want); have != want {
				t.Fatalf("have %q, want %q", have, want)
			}
		})
	}
}

func TestNextFilenameIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "video_7.mp4"), 0755); err != nil {
		t.Fatal(err)
	}
	have, err := NextFilename(filepath.Join(dir, "video.mp4"), "")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "video_1.mp4"); have != want {
		t.Fatalf("have %q, want %q", have, want)
	}
}

func TestSanitizeFilename(t *testing.T) {
	for in, want := range map[string]string{
		"test<file>name":       "test_file_name",
		"normal filename":      "normal filename",
		"path/to\\file":        "path_to_file",
		"video:part1":          "video:part1",
		"test\u0001control":    "test_control",
		"file|name":            "file_name",
		"  spaced  ":           "spaced",
		`quote"star*question?`: "quote_star_question_",
	} {
		if have := SanitizeFilename(in); have != want {
			t.Errorf("SanitizeFilename(%q): have %q, want %q", in, have, want)
		}
	}
}
