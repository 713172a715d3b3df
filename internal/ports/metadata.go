package ports

import (
	"playr/internal/domain"
)

// MetadataExtractor reads tag metadata from an audio file without mutating it.
//
// Extraction is best-effort: an unreadable or untagged file yields
// TrackInfo{Valid: false} together with domain.ErrMetadataInvalid, and callers
// proceed with placeholder fields rather than failing.
type MetadataExtractor interface {
	Extract(filePath string) (domain.TrackInfo, error)
}
