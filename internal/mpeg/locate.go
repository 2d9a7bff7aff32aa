package mpeg

import (
	"fmt"

	"github.com/AliceZed8/mp3-reader/internal/binary"
	"github.com/AliceZed8/mp3-reader/internal/types"
)

// Locate scans forward from start for the first offset holding a valid
// frame header.
//
// The scan is purely structural: bytes inside tag payloads that happen to
// look like a header are reported as well. It returns types.ErrNoValidFrame
// when the scan is exhausted.
func Locate(buf *binary.Buffer, start int) (int, Header, error) {
	start = max(start, 0)
	if buf.Len()-start < HeaderSize {
		return -1, 0, fmt.Errorf("scan from offset %d: %w", start, types.ErrNoValidFrame)
	}

	data, err := buf.Slice(start, buf.Len()-start, "frame scan")
	if err != nil {
		return -1, 0, err
	}

	for i := 0; i+HeaderSize <= len(data); i++ {
		// cheap pre-check on the first sync byte
		if data[i] != 0xFF {
			continue
		}
		if h := Decode(data[i:]); h.Valid() {
			return start + i, h, nil
		}
	}
	return -1, 0, fmt.Errorf("scan from offset %d: %w", start, types.ErrNoValidFrame)
}
