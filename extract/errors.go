package extract

import "errors"

// Error messages stay bare (no module prefix) because they surface verbatim
// in ParsedDocument.Error, which downstream consumers show to users.
var (
	// ErrNotFound is returned when the input file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrSizeExceeded is returned when a file is over its format's size cap.
	// Checked before any parsing work.
	ErrSizeExceeded = errors.New("file exceeds size limit")

	// ErrUnsupportedType is returned for file types outside the supported set.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrImageLoad is returned when an image file cannot be decoded.
	ErrImageLoad = errors.New("failed to load image")
)
