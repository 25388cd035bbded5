package media

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const defaultExt = "mp4"

// Filename is a clip name split into its base, trailing version numbers
// and extension: video_1_2.mp4 is {Base: video, Versions: [1 2], Ext: mp4}
type Filename struct {
	Base     string
	Ext      string
	Versions []int
}

// ParseFilename splits the last element of path. Trailing all-digit
// underscore separated parts are versions, unless every part is digits,
// in which case the whole stem is the base.
func ParseFilename(path string) (Filename, error) {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		stem, ext = name, ""
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = defaultExt
	}

	parts := strings.Split(stem, "_")
	if len(parts) == 1 || allDigits(parts...) {
		return Filename{Base: stem, Ext: ext}, nil
	}

	var versions []int
	i := len(parts)
	for i > 0 && allDigits(parts[i-1]) {
		i--
	}
	for _, p := range parts[i:] {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Filename{}, errors.Wrapf(err, "version %q", p)
		}
		versions = append(versions, v)
	}
	return Filename{Base: strings.Join(parts[:i], "_"), Ext: ext, Versions: versions}, nil
}

func (f Filename) prefix() string {
	p := make([]string, len(f.Versions))
	for i, v := range f.Versions {
		p[i] = strconv.Itoa(v)
	}
	return strings.Join(p, "_")
}

// NextFilename picks the next unused version name next to input. An
// unversioned clip gets a first level version (video.mp4 -> video_N.mp4);
// a versioned one gets a nested version (video_1.mp4 -> video_1_N.mp4).
// Notes, if any, are sanitized and appended after the version.
func NextFilename(input, notes string) (string, error) {
	f, err := ParseFilename(input)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(input)

	stem := f.Base
	if p := f.prefix(); p != "" {
		stem += "_" + p
	}
	next := maxVersion(dir, stem+"_", f.Ext) + 1

	name := stem + "_" + strconv.Itoa(next)
	if n := strings.ReplaceAll(SanitizeFilename(notes), "_", "-"); n != "" {
		name += "_" + n
	}
	return filepath.Join(dir, name+"."+f.Ext), nil
}

// maxVersion scans dir for files named <prefix><N>[_anything].<ext> and
// returns the largest N, or zero
func maxVersion(dir, prefix, ext string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	suffix := "." + ext
	max := 0
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		if len(prefix) >= len(name)-len(suffix) {
			continue
		}
		if fi, err := os.Stat(filepath.Join(dir, name)); err != nil || !fi.Mode().IsRegular() {
			continue
		}
		mid := name[len(prefix) : len(name)-len(suffix)]
		first := strings.SplitN(mid, "_", 2)[0]
		if !allDigits(first) {
			continue
		}
		if v, err := strconv.Atoi(first); err == nil && v > max {
			max = v
		}
	}
	return max
}

func allDigits(s ...string) bool {
	for _, s := range s {
		if s == "" {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// SanitizeFilename replaces characters that are unsafe in file names on
// common platforms with underscores and trims surrounding space. Colons
// are kept.
func SanitizeFilename(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '|', '?', '*', '/', '\\':
			return '_'
		}
		if unicode.IsControl(r) {
			return '_'
		}
		return r
	}, s))
}
