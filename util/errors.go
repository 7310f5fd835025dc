package util

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAnswer is returned by forward lookups whose response carries no
	// Answer section.
	ErrNoAnswer = errors.New("no answer in response")
	// ErrUnknownRecordType is returned for record types not known to us.
	ErrUnknownRecordType = errors.New("unknown record type")
)

// ResolutionError is returned when the DoH endpoint answers with a
// non-success HTTP status.
type ResolutionError struct {
	StatusCode int
	Message    string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// IsResolutionError returns true if err is or wraps a ResolutionError.
func IsResolutionError(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}
