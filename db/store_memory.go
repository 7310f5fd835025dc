package db

// DCSO hostnamer
// Copyright (c) 2017, 2026, DCSO GmbH

import (
	"fmt"
	"sync"

	"github.com/DCSO/hostnamer/types"
)

// MemoryStore is a Store keeping a whole sheet in memory. The first
// FrozenRows records of Sheet are treated as frozen, the first of them
// being the header.
type MemoryStore struct {
	sync.Mutex
	Sheet      [][]string
	FrozenRows int
	Writes     int
}

// MakeMemoryStore returns a new MemoryStore with a single frozen header row.
func MakeMemoryStore(header types.Header, rows [][]string) *MemoryStore {
	sheet := make([][]string, 0, len(rows)+1)
	sheet = append(sheet, append([]string{}, header...))
	for _, r := range rows {
		sheet = append(sheet, append([]string{}, r...))
	}
	return &MemoryStore{
		Sheet:      sheet,
		FrozenRows: 1,
	}
}

// CopyToMemoryStore reads header and rows from another store into a new
// MemoryStore, e.g. to perform a dry run without modifying the source.
func CopyToMemoryStore(s Store) (*MemoryStore, error) {
	header, err := s.Header()
	if err != nil {
		return nil, err
	}
	rows, err := s.Rows()
	if err != nil {
		return nil, err
	}
	return MakeMemoryStore(header, rows), nil
}

// Header returns the first sheet row.
func (s *MemoryStore) Header() (types.Header, error) {
	s.Lock()
	defer s.Unlock()
	if len(s.Sheet) == 0 || s.FrozenRows < 1 {
		return nil, fmt.Errorf("sheet has no header row")
	}
	return append(types.Header{}, s.Sheet[0]...), nil
}

// Rows returns copies of all non-frozen sheet rows.
func (s *MemoryStore) Rows() ([][]string, error) {
	s.Lock()
	defer s.Unlock()
	if len(s.Sheet) <= s.FrozenRows {
		return [][]string{}, nil
	}
	out := make([][]string, 0, len(s.Sheet)-s.FrozenRows)
	for _, r := range s.Sheet[s.FrozenRows:] {
		out = append(out, append([]string{}, r...))
	}
	return out, nil
}

// WriteRow overwrites the leading cells of sheet row FrozenRows + rowNumber
// (1-based) with values. Cells beyond len(values) are kept.
func (s *MemoryStore) WriteRow(rowNumber int, values []string) error {
	s.Lock()
	defer s.Unlock()
	pos := s.FrozenRows + rowNumber
	if rowNumber < 1 || pos > len(s.Sheet) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, rowNumber)
	}
	s.Sheet[pos-1] = mergeRecord(s.Sheet[pos-1], values)
	s.Writes++
	return nil
}

// Finish is a null operation in the MemoryStore implementation.
func (s *MemoryStore) Finish() error {
	return nil
}
