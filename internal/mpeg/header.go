// Package mpeg decodes MPEG audio frame headers and locates the first
// valid frame in a buffer.
package mpeg

import (
	"encoding/binary"
)

// Header is a 4-byte MPEG audio frame header, decoded big-endian.
//
// Bit layout, most significant bit first:
//
//	AAAAAAAA AAABBCCD EEEEFFGH IIJJKLMM
//
//	A sync (11)      B version (2)     C layer (2)      D protection (1)
//	E bitrate (4)    F frequency (2)   G padding (1)    H private (1)
//	I mode (2)       J mode ext (2)    K copyright (1)  L original (1)
//	M emphasis (2)
type Header uint32

// Version bit values.
const (
	VersionMPEG25   = 0
	VersionReserved = 1
	VersionMPEG2    = 2
	VersionMPEG1    = 3
)

// Layer bit values. Layer I is encoded as 3, Layer III as 1.
const (
	LayerReserved = 0
	LayerIII      = 1
	LayerII       = 2
	LayerI        = 3
)

// ModeMono is the channel mode value for single channel audio.
const ModeMono = 3

// SyncWord is the value of the 11 sync bits in every frame header.
const SyncWord = 0x7FF

// HeaderSize is the encoded size of a frame header.
const HeaderSize = 4

// Bitrates in kbps, indexed by [3-layer][bitrate index]. 0 is free format
// or invalid.
var (
	bitratesMPEG1 = [3][16]int{
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
	}
	bitratesMPEG2 = [3][16]int{
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
	}
)

// Sample frequencies in Hz, indexed by [version][frequency index].
var frequencies = [4][4]int{
	VersionMPEG25:   {11025, 12000, 8000, 0},
	VersionReserved: {0, 0, 0, 0},
	VersionMPEG2:    {22050, 24000, 16000, 0},
	VersionMPEG1:    {44100, 48000, 32000, 0},
}

var versionNames = [4]string{
	VersionMPEG25:   "MPEG 2.5",
	VersionReserved: "Reserved",
	VersionMPEG2:    "MPEG 2",
	VersionMPEG1:    "MPEG 1",
}

var channelModeNames = [4]string{"Stereo", "Joint stereo", "Dual Mono", "Mono"}

var emphasisNames = [4]string{"none", "50/15 ms", "Reserved", "CCIT J.17"}

// Decode interprets the first four bytes of b as a header. It never fails;
// a short slice decodes as zero, which is not Valid.
func Decode(b []byte) Header {
	if len(b) < HeaderSize {
		return 0
	}
	return Header(binary.BigEndian.Uint32(b))
}

func (h Header) Sync() uint32 { return uint32(h) >> 21 }
func (h Header) Version() int { return int(h>>19) & 0x3 }
func (h Header) Layer() int { return int(h>>17) & 0x3 }
func (h Header) ProtectionBit() int { return int(h>>16) & 0x1 }
func (h Header) BitrateIndex() int { return int(h>>12) & 0xF }
func (h Header) FrequencyIndex() int { return int(h>>10) & 0x3 }
func (h Header) PaddingBit() int { return int(h>>9) & 0x1 }
func (h Header) PrivateBit() int { return int(h>>8) & 0x1 }
func (h Header) Mode() int { return int(h>>6) & 0x3 }
func (h Header) ModeExtension() int { return int(h>>4) & 0x3 }
func (h Header) CopyrightBit() int { return int(h>>3) & 0x1 }
func (h Header) OriginalBit() int { return int(h>>2) & 0x1 }
func (h Header) Emphasis() int { return int(h) & 0x3 }
func (h Header) Protected() bool { return h.ProtectionBit() == 0 }
func (h Header) VersionName() string { return versionNames[h.Version()] }
func (h Header) ChannelModeName() string { return channelModeNames[h.Mode()] }
func (h Header) EmphasisName() string { return emphasisNames[h.Emphasis()] }

// Valid reports whether h is a structurally valid frame header.
func (h Header) Valid() bool {
	return h.Sync() == SyncWord &&
		h.Version() != VersionReserved &&
		h.Layer() != LayerReserved &&
		h.BitrateIndex() != 0xF &&
		h.FrequencyIndex() != 3
}

// LayerNumber returns 1, 2 or 3, or 0 for the reserved layer.
func (h Header) LayerNumber() int {
	if h.Layer() == LayerReserved {
		return 0
	}
	return 4 - h.Layer()
}

// BitrateKbps returns the bitrate in kbps. 0 means free format or a
// reserved layer.
func (h Header) BitrateKbps() int {
	if h.Layer() == LayerReserved {
		return 0
	}
	row := 3 - h.Layer()
	if h.Version() == VersionMPEG1 {
		return bitratesMPEG1[row][h.BitrateIndex()]
	}
	return bitratesMPEG2[row][h.BitrateIndex()]
}

// Frequency returns the sample frequency in Hz, 0 when reserved.
func (h Header) Frequency() int {
	return frequencies[h.Version()][h.FrequencyIndex()]
}

// FrameSize returns the frame length in bytes including the header.
// It is 0 for free-format frames and reserved frequencies.
func (h Header) FrameSize() int {
	freq := h.Frequency()
	if freq == 0 {
		return 0
	}
	bps := h.BitrateKbps() * 1000
	if h.Layer() == LayerI {
		return ((12 * bps / freq) + h.PaddingBit()) * 4
	}
	return 144*bps/freq + h.PaddingBit()
}

// SamplesPerFrame returns the number of PCM samples per channel a frame
// decodes to.
func (h Header) SamplesPerFrame() int {
	switch h.Layer() {
	case LayerI:
		return 384
	case LayerII:
		return 1152
	case LayerIII:
		if h.Version() == VersionMPEG1 {
			return 1152
		}
		return 576
	}
	return 0
}

// Channels returns 1 for mono and 2 otherwise.
func (h Header) Channels() int {
	if h.Mode() == ModeMono {
		return 1
	}
	return 2
}

// sideInfoSize returns the Layer III side information length that sits
// between the header and a Xing/Info tag.
func (h Header) sideInfoSize() int {
	mono := h.Mode() == ModeMono
	switch {
	case h.Version() == VersionMPEG1 && mono:
		return 17
	case h.Version() == VersionMPEG1:
		return 32
	case mono:
		return 9
	default:
		return 17
	}
}
