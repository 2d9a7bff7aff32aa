package types

import (
	"fmt"
	"time"
)

// FrameInfo describes the first MPEG audio frame found in a buffer.
type FrameInfo struct {
	// Offset of the 4-byte header in the buffer
	Offset int

	// Raw header word
	Header uint32

	VersionName     string // "MPEG 1", "MPEG 2", "MPEG 2.5"
	Layer           int    // 1, 2 or 3
	Bitrate         int    // kbps, 0 for free format
	Frequency       int    // Hz
	ChannelModeName string // "Stereo", "Joint stereo", "Dual Mono", "Mono"
	EmphasisName    string // "none", "50/15 ms", "Reserved", "CCIT J.17"
	FrameSize       int    // bytes, including the header
	Channels        int

	Protected bool // CRC follows the header (protection bit is 0)
	Padding   bool
	Private   bool
	Copyright bool
	Original  bool

	// VBR is set when a Xing or VBRI header was found in the frame.
	VBR bool

	// Frames is the total frame count declared by a VBR header, 0 when unknown.
	Frames uint32

	// Duration is estimated from the VBR frame count or, for CBR, from the
	// audio byte length and bitrate.
	Duration time.Duration
}

// String returns a one-line summary.
// Example output: "MPEG 1 Layer 3 128kbps 44100Hz Joint stereo".
func (f FrameInfo) String() string {
	rate := fmt.Sprintf("%dkbps", f.Bitrate)
	if f.VBR {
		rate += " VBR"
	}
	return fmt.Sprintf("%s Layer %d %s %dHz %s", f.VersionName, f.Layer, rate, f.Frequency, f.ChannelModeName)
}
