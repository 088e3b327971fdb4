package cordova

import (
	"errors"
	"fmt"
)

var (
	// ErrNoWidget is reported by Err when the document has no <widget> root.
	ErrNoWidget = errors.New("config.xml has no widget root element")

	// ErrUnsupportedPlatform is matched by every UnsupportedPlatformError.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// UnsupportedPlatformError is returned by platform specific accessors when
// the platform has no known attribute alias. The call that returned it did
// not change the document.
type UnsupportedPlatformError struct {
	Platform  string
	Operation string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("%s is not supported for the %s platform", e.Operation, e.Platform)
}

// Unwrap allows errors.Is(err, ErrUnsupportedPlatform).
func (e *UnsupportedPlatformError) Unwrap() error {
	return ErrUnsupportedPlatform
}

func unsupported(platform, operation string) error {
	return &UnsupportedPlatformError{Platform: platform, Operation: operation}
}
