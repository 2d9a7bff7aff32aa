// Package metadata aggregates the frames of every detected ID3v2 tag into
// a single Metadata result.
package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/AliceZed8/mp3-reader/internal/binary"
	"github.com/AliceZed8/mp3-reader/internal/id3v2"
	"github.com/AliceZed8/mp3-reader/internal/registry"
	"github.com/AliceZed8/mp3-reader/internal/types"
)

// ErrPictureTooLarge is returned by the APIC handler when the image exceeds
// Options.MaxPictureSize.
var ErrPictureTooLarge = errors.New("picture exceeds size limit")

func init() {
	registry.Register("TIT2", textHandler(func(m *types.Metadata) *types.TextField { return &m.Title }))
	registry.Register("TPE1", textHandler(func(m *types.Metadata) *types.TextField { return &m.Artist }))
	registry.Register("TALB", textHandler(func(m *types.Metadata) *types.TextField { return &m.Album }))
	registry.Register("TYER", textHandler(func(m *types.Metadata) *types.TextField { return &m.Year }))
	registry.Register("TDRC", textHandler(func(m *types.Metadata) *types.TextField { return &m.Year }))
	registry.Register("TRCK", textHandler(func(m *types.Metadata) *types.TextField { return &m.Track }))
	registry.Register("TCON", textHandler(func(m *types.Metadata) *types.TextField { return &m.Genre }))
	registry.Register("APIC", registry.HandlerFunc(handlePicture))
}

// textHandler stores a decoded text frame in the field selected by field.
func textHandler(field func(*types.Metadata) *types.TextField) registry.FrameHandler {
	return registry.HandlerFunc(func(dst *types.Metadata, f id3v2.Frame, opts registry.Options) error {
		text, err := id3v2.DecodeTextFrame(f, opts.TextMode)
		if err != nil {
			return err
		}
		*field(dst) = types.Text(text)
		return nil
	})
}

func handlePicture(dst *types.Metadata, f id3v2.Frame, opts registry.Options) error {
	pic, err := id3v2.DecodePicture(f, opts.TextMode)
	if err != nil {
		return err
	}
	if opts.MaxPictureSize > 0 && pic.Size() > opts.MaxPictureSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrPictureTooLarge, pic.Size(), opts.MaxPictureSize)
	}
	dst.Picture = pic
	return nil
}

// Aggregate walks the frames of each tag in order and dispatches every
// frame with a registered handler. Later frames overwrite earlier ones,
// across tags as well. Unregistered frames are ignored.
//
// Problems that only affect part of the result, such as a malformed frame
// chain or an undecodable picture, are returned as warnings. An error is
// returned only when ctx is done or the buffer has been released.
func Aggregate(ctx context.Context, buf *binary.Buffer, tags []id3v2.TagHeader, opts registry.Options) (*types.Metadata, []types.Warning, error) {
	meta := &types.Metadata{}
	var warnings []types.Warning

	for _, tag := range tags {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if buf.Released() {
			return nil, nil, types.ErrBufferReleased
		}

		it := id3v2.NewFrameIterator(buf, tag)
		for f := range it.All() {
			if f.Truncated {
				warnings = append(warnings, types.Warning{
					Stage:   "frames",
					Message: fmt.Sprintf("frame %s truncated: %d of %d bytes", f.ID, f.Payload.Len(), f.Size),
					Offset:  int64(f.Offset),
				})
			}

			h := registry.Get(f.ID)
			if h == nil {
				continue
			}
			if err := h.Handle(meta, f, opts); err != nil {
				if errors.Is(err, types.ErrBufferReleased) {
					return nil, nil, err
				}
				warnings = append(warnings, types.Warning{
					Stage:   stageFor(f.ID),
					Message: fmt.Sprintf("frame %s skipped: %v", f.ID, err),
					Offset:  int64(f.Offset),
				})
			}
		}
		if err := it.Err(); err != nil {
			warnings = append(warnings, types.Warning{
				Stage:   "frames",
				Message: fmt.Sprintf("%s: %v", tag, err),
				Offset:  int64(tag.Offset),
			})
		}
	}
	return meta, warnings, nil
}

func stageFor(id string) string {
	if id == "APIC" {
		return "picture"
	}
	return "frames"
}
