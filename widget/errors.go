// Package widget holds the state machines behind the interactive page widgets:
// disclosure groups, carousels, toggle switches and form validation.
//
// The widgets own state only. Presentation is driven by observers the host
// injects at construction; no widget ever renders anything itself.
package widget

import "errors"

// Sentinel errors shared by the widget packages.
var (
	ErrConfiguration   = errors.New("widget: invalid configuration")
	ErrNotFound        = errors.New("widget: not found")
	ErrIndexOutOfRange = errors.New("widget: index out of range")
	ErrClosed          = errors.New("widget: closed")
)

// IsConfigurationError checks if err is a construction-time configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsNotFound checks if err reports an unknown identifier.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsIndexOutOfRange checks if err reports an index outside the valid range.
func IsIndexOutOfRange(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}

// IsRecoverable reports whether err leaves the widget usable with its state
// unchanged. Hosts should log these and carry on.
func IsRecoverable(err error) bool {
	return IsNotFound(err) || IsIndexOutOfRange(err)
}
