// Package loader reads a file into an immutable binary.Buffer.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AliceZed8/mp3-reader/internal/binary"
)

// Mode selects how file content is brought into memory.
type Mode int

const (
	// ModeMmap maps the file read-only where the platform supports it and
	// falls back to ModeRead otherwise.
	ModeMmap Mode = iota

	// ModeRead reads the whole file into the heap.
	ModeRead
)

func (m Mode) String() string {
	switch m {
	case ModeMmap:
		return "mmap"
	case ModeRead:
		return "read"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

var errMmapUnsupported = errors.New("mmap not supported on this platform")

// Load opens path and returns its content as a Buffer. The caller must
// Close the buffer; for mapped files that unmaps the region.
func Load(ctx context.Context, path string, mode Mode) (*binary.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if mode == ModeMmap {
		buf, err := loadMapped(path)
		if err == nil {
			return buf, nil
		}
		if !errors.Is(err, errMmapUnsupported) && !errors.Is(err, errEmptyFile) {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return binary.NewBuffer(data, path), nil
}

// errEmptyFile reports a zero-length file, which cannot be mapped.
var errEmptyFile = errors.New("empty file")

func loadMapped(path string) (*binary.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if !stat.Mode().IsRegular() {
		return nil, errMmapUnsupported
	}
	if stat.Size() == 0 {
		return nil, errEmptyFile
	}

	data, release, err := mmap(f, int(stat.Size()))
	if err != nil {
		return nil, err
	}
	return binary.NewReleasableBuffer(data, path, release), nil
}
