package db

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// CSVStore is a Store backed by a CSV file. The file is read completely on
// creation; writes are applied in memory and persisted by Finish(), either
// to OutputPath or back to the input file.
type CSVStore struct {
	*MemoryStore
	InputPath  string
	OutputPath string
	Comma      rune
	Logger     *log.Entry
	dirty      bool
}

// ReadCSV reads all records from r. Records may have varying lengths.
func ReadCSV(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// MakeCSVStore reads the given CSV file into a new CSVStore. frozenRows is
// the number of leading lines not containing data, the first of which is
// the header. If outputPath is empty, Finish() overwrites the input file.
func MakeCSVStore(inputPath, outputPath string, comma rune, frozenRows int) (*CSVStore, error) {
	if frozenRows < 1 {
		return nil, fmt.Errorf("need at least one frozen row for the header, got %d", frozenRows)
	}
	if comma == 0 {
		comma = ','
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := ReadCSV(f, comma)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputPath, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no header row", inputPath)
	}
	if outputPath == "" {
		outputPath = inputPath
	}
	s := &CSVStore{
		MemoryStore: &MemoryStore{
			Sheet:      records,
			FrozenRows: frozenRows,
		},
		InputPath:  inputPath,
		OutputPath: outputPath,
		Comma:      comma,
		Logger: log.WithFields(log.Fields{
			"domain": "store",
			"store":  "csv",
		}),
	}
	s.Logger.WithFields(log.Fields{
		"file":    inputPath,
		"records": len(records),
	}).Debug("sheet loaded")
	return s, nil
}

// WriteRow replaces the CSV record at FrozenRows + rowNumber (1-based).
func (s *CSVStore) WriteRow(rowNumber int, values []string) error {
	if err := s.MemoryStore.WriteRow(rowNumber, values); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Dump writes the whole sheet as CSV to w.
func (s *CSVStore) Dump(w io.Writer) error {
	s.Lock()
	defer s.Unlock()
	cw := csv.NewWriter(w)
	cw.Comma = s.Comma
	if err := cw.WriteAll(s.Sheet); err != nil {
		return err
	}
	return cw.Error()
}

// Finish persists the sheet if rows were written or the output differs
// from the input. The file is replaced atomically.
func (s *CSVStore) Finish() error {
	if !s.dirty && s.OutputPath == s.InputPath {
		return nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.OutputPath), ".hostnamer-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err = tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err = s.Dump(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), s.OutputPath); err != nil {
		return err
	}
	s.Logger.WithFields(log.Fields{
		"file":   s.OutputPath,
		"writes": s.Writes,
	}).Info("sheet written")
	s.dirty = false
	return nil
}
