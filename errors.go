package pdfview

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [ChromeViewer].
	ErrClosed = errors.New("pdfview: viewer is closed")

	// ErrUnknownStrategy is returned when no delivery strategy matches the
	// source, or when a locator is requested for [StrategyUnknown].
	ErrUnknownStrategy = errors.New("pdfview: no delivery strategy matches the source")
)
