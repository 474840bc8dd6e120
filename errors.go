package docintake

import "github.com/wicaksana/docintake/extract"

// Sentinel errors produced by the pipeline's extractors, re-exported for
// callers that only import the root package. Their messages stay bare (no
// module prefix) because they surface verbatim in ParsedDocument.Error.
var (
	// ErrNotFound is returned when the input file does not exist.
	ErrNotFound = extract.ErrNotFound

	// ErrSizeExceeded is returned when a file is over its format's size
	// cap; checked before any parsing work begins.
	ErrSizeExceeded = extract.ErrSizeExceeded

	// ErrUnsupportedType is returned for file types outside the supported
	// set.
	ErrUnsupportedType = extract.ErrUnsupportedType

	// ErrImageLoad is returned when an image file cannot be decoded.
	ErrImageLoad = extract.ErrImageLoad
)
