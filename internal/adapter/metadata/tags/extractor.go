// Package tags provides metadata extraction for audio files using embedded
// tags (ID3v1/v2, MP4, FLAC, OGG). Files are opened read-only and never
// mutated.
package tags

import (
	"os"
	"strings"

	"github.com/dhowden/tag"

	"playr/internal/domain"
	"playr/internal/ports"
)

// Extractor implements ports.MetadataExtractor over github.com/dhowden/tag.
//
// Extraction is best-effort: duration, bitrate, sample rate and channel count
// are not carried by embedded tags and stay zero. An unreadable or untagged
// file yields TrackInfo{Valid: false} together with domain.ErrMetadataInvalid
// so callers can proceed with placeholder fields.
type Extractor struct{}

// NewExtractor creates a new tag extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads tag metadata from an audio file.
func (e *Extractor) Extract(filePath string) (domain.TrackInfo, error) {
	if filePath == "" {
		return domain.TrackInfo{}, domain.ErrInvalidFilePath
	}

	file, err := os.Open(filePath)
	if err != nil {
		return domain.TrackInfo{}, domain.ErrMetadataInvalid
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil || meta == nil {
		return domain.TrackInfo{}, domain.ErrMetadataInvalid
	}

	info := domain.TrackInfo{
		Title:  strings.TrimSpace(meta.Title()),
		Artist: strings.TrimSpace(meta.Artist()),
		Album:  strings.TrimSpace(meta.Album()),
		Genre:  strings.TrimSpace(meta.Genre()),
		Valid:  true,
	}

	if year := meta.Year(); year > 0 {
		info.Year = year
	}

	trackNum, _ := meta.Track()
	info.TrackNumber = trackNum

	return info, nil
}

// Verify that Extractor implements the MetadataExtractor interface
var _ ports.MetadataExtractor = (*Extractor)(nil)
