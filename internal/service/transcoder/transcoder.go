package transcoder

import "context"

// Transcoder defines the media operations the clip extractor needs:
// byte-exact sub-clip extraction without re-encoding, and still-frame
// extraction for thumbnails. Source references may be local paths or
// remote URLs that support range requests.
type Transcoder interface {
	// Cut produces a stream-copied sub-clip of sourceRef starting at
	// startOffset seconds with the given duration in seconds
	Cut(ctx context.Context, sourceRef string, startOffset, duration float64, outputPath string) error

	// ExtractFrame extracts one still frame at offsetSeconds into outputPath
	ExtractFrame(ctx context.Context, sourceRef string, offsetSeconds float64, outputPath string) error
}
