package ines

import "fmt"

// A FormatError reports a truncated or malformed rom image.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid iNES rom: " + e.Reason
}

func formatErrorf(format string, args ...any) error {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// An UnsupportedFeatureError reports a rom relying on a feature the emulator
// doesn't support.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return "unsupported feature: " + e.Feature
}
