package image

import "fmt"

// LoadError describes a problem with a manifest.
type LoadError struct {
	// File is the manifest path, if it was read from disk
	File string

	// Region is the name of the offending region, if any
	Region string

	// Message describes the problem
	Message string

	// Cause is the underlying error, if any
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Region != "" {
		msg = fmt.Sprintf("region %q: %s", e.Region, msg)
	}
	if e.File != "" {
		msg = fmt.Sprintf("%s: %s", e.File, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
