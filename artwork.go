package mp3reader

import (
	"github.com/AliceZed8/mp3-reader/internal/id3v2"
	"github.com/AliceZed8/mp3-reader/internal/types"
)

// Picture is an alias to types.Picture.
// Re-exporting from internal/types to maintain public API.
type Picture = types.Picture

// ArtworkType is an alias to types.ArtworkType.
// Re-exporting from internal/types to maintain public API.
type ArtworkType = types.ArtworkType

// Re-export all artwork type constants
const (
	ArtworkOther             = types.ArtworkOther
	ArtworkIcon              = types.ArtworkIcon
	ArtworkOtherIcon         = types.ArtworkOtherIcon
	ArtworkFrontCover        = types.ArtworkFrontCover
	ArtworkBackCover         = types.ArtworkBackCover
	ArtworkLeaflet           = types.ArtworkLeaflet
	ArtworkMedia             = types.ArtworkMedia
	ArtworkLeadArtist        = types.ArtworkLeadArtist
	ArtworkArtist            = types.ArtworkArtist
	ArtworkConductor         = types.ArtworkConductor
	ArtworkBand              = types.ArtworkBand
	ArtworkComposer          = types.ArtworkComposer
	ArtworkLyricist          = types.ArtworkLyricist
	ArtworkRecordingLocation = types.ArtworkRecordingLocation
	ArtworkDuringRecording   = types.ArtworkDuringRecording
	ArtworkDuringPerformance = types.ArtworkDuringPerformance
	ArtworkVideoCapture      = types.ArtworkVideoCapture
	ArtworkBrightFish        = types.ArtworkBrightFish
	ArtworkIllustration      = types.ArtworkIllustration
	ArtworkBandLogotype      = types.ArtworkBandLogotype
	ArtworkPublisherLogotype = types.ArtworkPublisherLogotype
)

// DefaultPictureMIME is the MIME type assumed when an APIC frame declares none.
const DefaultPictureMIME = id3v2.DefaultPictureMIME
