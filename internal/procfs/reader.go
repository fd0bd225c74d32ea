// Package procfs reads the kernel's virtual text files line by line
package procfs

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// MaxLineLength bounds a single line; the intr line of /proc/stat on hosts
// with many interrupt sources runs well past bufio's 64 KiB default.
const MaxLineLength = 4 << 20

// DefaultRoot is where the kernel mounts procfs
const DefaultRoot = "/proc"

// Reader resolves names like "meminfo" or "sys/vm/min_free_kbytes" against Root
type Reader struct {
	Root string
	Log  *zap.Logger
}

// NewReader creates a Reader rooted at root, or DefaultRoot when root is empty
func NewReader(root string, log *zap.Logger) *Reader {
	if root == "" {
		root = DefaultRoot
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{Root: root, Log: log}
}

// Path returns the absolute location of name under the reader root
func (r *Reader) Path(name string) string {
	root := r.Root
	if root == "" {
		root = DefaultRoot
	}
	return filepath.Join(root, name)
}

func (r *Reader) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// ReadLines returns every line of name.
//
// A missing file is an ErrMissingSource when required is set; otherwise an
// empty slice is returned and a warning is logged. Any other failure is an
// ErrReadFailure and no partial content is returned. skipHeader drops the
// first line.
func (r *Reader) ReadLines(name string, required, skipHeader bool) ([]string, error) {
	path := r.Path(name)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if required {
				return nil, &SourceError{Path: path, Kind: ErrMissingSource}
			}
			r.logger().Warn("optional source not found", zap.String("path", path))
			return []string{}, nil
		}
		return nil, &SourceError{Path: path, Kind: ErrReadFailure, Err: err}
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, &SourceError{Path: path, Kind: ErrReadFailure, Err: err}
	}

	r.logger().Debug("read source", zap.String("path", path), zap.Int("lines", len(lines)))

	if skipHeader && len(lines) > 0 {
		lines = lines[1:]
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}

// ReadScalar returns the first non-blank line of a required single-value file, trimmed
func (r *Reader) ReadScalar(name string) (string, error) {
	lines, err := r.ReadLines(name, true, false)
	if err != nil {
		return "", err
	}
	for _, line := range lines {
		if v := strings.TrimSpace(line); v != "" {
			return v, nil
		}
	}
	return "", nil
}
