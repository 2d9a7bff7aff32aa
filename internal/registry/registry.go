// Package registry maps ID3v2 frame identifiers to the handlers that store
// decoded frames in a Metadata result.
package registry

import (
	"slices"
	"sync"

	"github.com/AliceZed8/mp3-reader/internal/id3v2"
	"github.com/AliceZed8/mp3-reader/internal/types"
)

// Options controls how handlers decode frames.
type Options struct {
	TextMode id3v2.TextMode

	// MaxPictureSize drops pictures with larger images. 0 means no limit.
	MaxPictureSize int
}

// FrameHandler decodes one frame into dst.
type FrameHandler interface {
	Handle(dst *types.Metadata, f id3v2.Frame, opts Options) error
}

// HandlerFunc adapts a function to FrameHandler.
type HandlerFunc func(dst *types.Metadata, f id3v2.Frame, opts Options) error

// Handle calls fn.
func (fn HandlerFunc) Handle(dst *types.Metadata, f id3v2.Frame, opts Options) error {
	return fn(dst, f, opts)
}

var (
	mu       sync.RWMutex
	handlers = make(map[string]FrameHandler)
)

// Register registers the handler for a frame identifier, replacing any
// previous one. This is called by handler packages during initialization.
func Register(id string, h FrameHandler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[id] = h
}

// Get returns the handler for a frame identifier.
// Returns nil if no handler is registered for it.
func Get(id string) FrameHandler {
	mu.RLock()
	defer mu.RUnlock()
	return handlers[id]
}

// IDs returns the registered frame identifiers in sorted order.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]string, 0, len(handlers))
	for id := range handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
