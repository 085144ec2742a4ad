// Package input loads task batches from files or stdin and watches files
// for changes.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// MaxInputBytes caps how much input is read.
const MaxInputBytes = 16 << 20

// ErrInputTooLarge is returned when input exceeds MaxInputBytes.
var ErrInputTooLarge = errors.New("input exceeds size limit")

// StdinPath selects standard input.
const StdinPath = "-"

// Reader reads raw task input.
// It uses an afero.Fs for files so tests can use afero.NewMemMapFs().
type Reader struct {
	fs    afero.Fs
	stdin io.Reader
}

// NewReader creates a Reader over fs, reading stdin for "-".
func NewReader(fs afero.Fs, stdin io.Reader) *Reader {
	return &Reader{fs: fs, stdin: stdin}
}

// NewOSReader reads from the real filesystem and os.Stdin.
func NewOSReader() *Reader {
	return NewReader(afero.NewOsFs(), os.Stdin)
}

// Read returns the contents of path, or of stdin when path is empty or "-".
func (r *Reader) Read(path string) ([]byte, error) {
	if path == "" || path == StdinPath {
		data, err := readLimited(r.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	info, err := r.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("read %s: is a directory", path)
	}

	f, err := r.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := readLimited(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func readLimited(src io.Reader) ([]byte, error) {
	if src == nil {
		return nil, errors.New("no input source")
	}
	data, err := io.ReadAll(io.LimitReader(src, MaxInputBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxInputBytes {
		return nil, ErrInputTooLarge
	}
	return data, nil
}
