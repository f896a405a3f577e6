package ingest

import "errors"

// Sentinel errors for upload normalization
var (
	ErrEmptyFile       = errors.New("upload file is empty")
	ErrInvalidEncoding = errors.New("upload file is not valid UTF-8")
	ErrMissingHeader   = errors.New("upload file has no header row")
)
