// Package mp3reader decodes the metadata embedded in MP3 files.
//
// It reads three independent structures from one in-memory copy of the
// file: ID3v2 tags with their text and picture frames, the 128-byte ID3v1
// trailer, and the header of the first MPEG audio frame. No audio is
// decoded.
//
// # Quick Start
//
// Reading metadata from a file:
//
//	r, err := mp3reader.Open("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	meta := r.Metadata()
//	fmt.Printf("%s - %s\n", meta.Artist, meta.Title)
//
//	if info, err := r.FirstFrame(); err == nil {
//		fmt.Println(info) // MPEG 1 Layer 3 128kbps 44100Hz Joint stereo
//	}
//
// # Borrowed Bytes
//
// The file is loaded once, memory mapped where possible, and never copied
// or modified. Picture images and ID3v1 fields are views into that buffer.
// After Reader.Close they return ErrBufferReleased; Clone them first to keep
// the bytes:
//
//	if pic := r.Metadata().Picture; pic != nil {
//		img, err := pic.Clone()
//		...
//	}
//
// # Tag Detection
//
// By default only an ID3v2 tag at offset 0 is decoded. Other "ID3"
// signatures, which usually occur by coincidence inside frames or audio,
// are reported by Reader.Anomalies. WithScanMode(ScanAllOffsets) decodes
// every match instead, with later frames overwriting earlier ones.
//
// # Text Decoding
//
// By default UTF-16 text keeps only its ASCII characters and Latin-1 text
// is returned byte for byte. WithTextMode(TextUnicode) decodes both to
// UTF-8.
//
// # Error Handling
//
// mp3reader distinguishes between fatal errors and warnings:
//
//   - Fatal errors prevent decoding entirely (file not found, canceled context)
//   - Absent structures are reported with ErrSignatureMismatch,
//     ErrBufferTooSmall or ErrNoValidFrame
//   - Warnings indicate non-fatal issues (stray signatures, malformed frame
//     chains, oversized pictures)
//
// Always check Reader.Anomalies for issues encountered while decoding:
//
//	for _, w := range r.Anomalies() {
//		log.Printf("Warning: %s", w)
//	}
//
// # Concurrency
//
// All decoders are read-only over the shared buffer. Reader.Probe runs
// them in parallel, and OpenMany opens files in parallel.
package mp3reader
