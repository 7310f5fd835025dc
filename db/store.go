package db

// DCSO hostnamer
// Copyright (c) 2017, 2026, DCSO GmbH

import (
	"errors"

	"github.com/DCSO/hostnamer/types"
)

// ErrRowOutOfRange is returned when writing a row number that does not
// exist in the store.
var ErrRowOutOfRange = errors.New("row number out of range")

// Store is an interface for a tabular data store holding the rows to be
// enriched. Rows() returns the data rows (without header or frozen rows)
// as positional records aligned to Header(). WriteRow() replaces the data
// row with the given 1-based row number, which the store maps to its own
// position by adding the number of frozen rows. Finish() can be used to
// persist or release any state.
type Store interface {
	Header() (types.Header, error)
	Rows() ([][]string, error)
	WriteRow(rowNumber int, values []string) error
	Finish() error
}

// mergeRecord overwrites the leading cells of old with values and keeps any
// cells beyond len(values).
func mergeRecord(old, values []string) []string {
	out := append([]string{}, values...)
	if len(old) > len(values) {
		out = append(out, old[len(values):]...)
	}
	return out
}
