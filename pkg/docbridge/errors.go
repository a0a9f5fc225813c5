package docbridge

import "errors"

// Error types
var (
	// ErrMissingFileID indicates a request without the required file identifier
	ErrMissingFileID = errors.New("fileId is required")

	// ErrDocumentNotFound indicates the requested document does not exist in storage
	ErrDocumentNotFound = errors.New("document not found")

	// ErrMissingDownloadURL indicates a save event arrived without a document URL
	ErrMissingDownloadURL = errors.New("save event has no download url")
)
