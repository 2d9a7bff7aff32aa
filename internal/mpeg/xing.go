package mpeg

import (
	"time"

	"github.com/AliceZed8/mp3-reader/internal/binary"
	"github.com/AliceZed8/mp3-reader/internal/types"
)

const (
	xingFramesFlag = 0x0001

	// VBRI sits at a fixed distance from the header regardless of mode.
	vbriOffset       = 36
	vbriFramesOffset = 14
)

// VBRInfo is what a Xing, Info or VBRI tag in the first frame declares.
type VBRInfo struct {
	Kind   string // "Xing", "Info" or "VBRI"
	Frames uint32 // 0 when the tag carries no frame count
}

// ProbeVBR looks for a Xing/Info tag after the side information of the
// frame at off, then for a VBRI tag. It reports false when neither is
// present.
func ProbeVBR(buf *binary.Buffer, off int, h Header) (VBRInfo, bool) {
	xing := off + HeaderSize + h.sideInfoSize()
	for _, kind := range []string{"Xing", "Info"} {
		if !buf.HasPrefixAt(xing, kind) {
			continue
		}
		c := binary.NewCursor(buf, xing+4)
		flags := binary.ReadValue[uint32](c, "Xing flags")
		var frames uint32
		if flags&xingFramesFlag != 0 {
			frames = binary.ReadValue[uint32](c, "Xing frame count")
		}
		return VBRInfo{Kind: kind, Frames: frames}, c.Err() == nil
	}

	vbri := off + vbriOffset
	if buf.HasPrefixAt(vbri, "VBRI") {
		frames, err := binary.Read[uint32](buf, vbri+vbriFramesOffset, "VBRI frame count")
		if err != nil {
			return VBRInfo{}, false
		}
		return VBRInfo{Kind: "VBRI", Frames: frames}, true
	}
	return VBRInfo{}, false
}

// DurationFromFrames computes the play time of n frames.
func DurationFromFrames(n uint32, h Header) time.Duration {
	freq := h.Frequency()
	if freq == 0 || n == 0 {
		return 0
	}
	samples := uint64(n) * uint64(h.SamplesPerFrame())
	return time.Duration(float64(samples) / float64(freq) * float64(time.Second))
}

// EstimateCBRDuration estimates the play time of audioBytes of constant
// bitrate audio.
func EstimateCBRDuration(audioBytes int, h Header) time.Duration {
	kbps := h.BitrateKbps()
	if kbps == 0 || audioBytes <= 0 {
		return 0
	}
	seconds := float64(audioBytes) * 8 / float64(kbps*1000)
	return time.Duration(seconds * float64(time.Second))
}

// Info decodes the frame at off into a FrameInfo. audioEnd bounds the
// audio data for the CBR duration estimate (buffer length minus any
// trailing ID3v1 tag).
//
// An Info tag marks a CBR file written by an encoder that still records a
// frame count, so the count is used for the duration but VBR stays false.
func Info(buf *binary.Buffer, off int, h Header, audioEnd int) types.FrameInfo {
	info := types.FrameInfo{
		Offset:          off,
		Header:          uint32(h),
		VersionName:     h.VersionName(),
		Layer:           h.LayerNumber(),
		Bitrate:         h.BitrateKbps(),
		Frequency:       h.Frequency(),
		ChannelModeName: h.ChannelModeName(),
		EmphasisName:    h.EmphasisName(),
		FrameSize:       h.FrameSize(),
		Channels:        h.Channels(),
		Protected:       h.Protected(),
		Padding:         h.PaddingBit() == 1,
		Private:         h.PrivateBit() == 1,
		Copyright:       h.CopyrightBit() == 1,
		Original:        h.OriginalBit() == 1,
	}

	if vbr, ok := ProbeVBR(buf, off, h); ok {
		info.VBR = vbr.Kind != "Info"
		info.Frames = vbr.Frames
		info.Duration = DurationFromFrames(vbr.Frames, h)
	}
	if info.Duration == 0 {
		info.Duration = EstimateCBRDuration(audioEnd-off, h)
	}
	return info
}
