package mp3reader

import (
	"github.com/AliceZed8/mp3-reader/internal/types"
)

// FrameInfo is an alias to types.FrameInfo.
// Re-exporting from internal/types to maintain public API.
type FrameInfo = types.FrameInfo
