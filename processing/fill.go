package processing

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"context"
	"fmt"
	"time"

	"github.com/DCSO/hostnamer/db"
	"github.com/DCSO/hostnamer/types"

	log "github.com/sirupsen/logrus"
)

// FilledRow describes a single row written back to the store.
type FilledRow struct {
	RowNumber int    `json:"row"`
	IP        string `json:"ip"`
	Hostname  string `json:"hostname"`
}

// FillReport summarizes a FillStore run.
type FillReport struct {
	Started  time.Time   `json:"started"`
	Duration float64     `json:"duration_seconds"`
	Rows     int         `json:"rows"`
	Written  int         `json:"written"`
	Resolved int         `json:"resolved"`
	NoData   int         `json:"nodata"`
	Filled   []FilledRow `json:"filled"`
}

// FillStore reads all rows from the store, resolves missing host names via
// the given filler and writes every mutated row back individually. Rows
// are written only after all lookups succeeded.
func FillStore(ctx context.Context, store db.Store, filler *HostnameFiller) (FillReport, error) {
	report := FillReport{
		Started: time.Now(),
		Filled:  make([]FilledRow, 0),
	}
	header, err := store.Header()
	if err != nil {
		return report, fmt.Errorf("reading header: %w", err)
	}
	records, err := store.Rows()
	if err != nil {
		return report, fmt.Errorf("reading rows: %w", err)
	}
	rows := types.MakeRows(header, records)
	report.Rows = len(rows)

	mutated, err := filler.ResolveUnknownHostnames(ctx, header, rows)
	if err != nil {
		return report, err
	}

	for _, row := range mutated {
		if err := store.WriteRow(row.RowNumber, row.Values(header)); err != nil {
			return report, fmt.Errorf("writing row %d: %w", row.RowNumber, err)
		}
		hostname := row.Get(filler.Columns.Hostname)
		if types.IsNoDataValue(hostname) {
			report.NoData++
		} else {
			report.Resolved++
		}
		report.Written++
		report.Filled = append(report.Filled, FilledRow{
			RowNumber: row.RowNumber,
			IP:        row.Get(filler.Columns.IP),
			Hostname:  hostname,
		})
	}
	report.Duration = time.Since(report.Started).Seconds()
	filler.Logger.WithFields(log.Fields{
		"rows":     report.Rows,
		"written":  report.Written,
		"resolved": report.Resolved,
		"nodata":   report.NoData,
	}).Info("fill run complete")
	return report, nil
}
