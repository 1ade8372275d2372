package domain

import "errors"

// Input errors. Their messages are returned to API callers verbatim.
var (
	ErrInvalidPlayStoreURL = errors.New("Invalid URL: Could not extract package ID.")
	ErrInvalidAppStoreURL  = errors.New("Invalid App Store URL")
)
