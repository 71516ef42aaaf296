package entity

import "errors"

var (
	// Document errors
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentCorrupt  = errors.New("document is corrupt or not a supported container")

	// Compression errors
	ErrEncodeFailed = errors.New("image re-encoding failed")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
