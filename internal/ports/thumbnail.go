package ports

import "desksweep/internal/domain"

// ThumbnailProvider generates preview images in the background. Request is
// idempotent: calling it for a file already cached or already in flight is a
// no-op. Results for files no longer of interest are simply never read.
type ThumbnailProvider interface {
	Request(rec domain.FileRecord)
	Get(id domain.FileID) (domain.Thumbnail, bool)
	Close() error
}
