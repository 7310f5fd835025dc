package processing

// DCSO hostnamer
// Copyright (c) 2019, 2026, DCSO GmbH

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/DCSO/hostnamer/types"
	"github.com/DCSO/hostnamer/util"

	log "github.com/sirupsen/logrus"
	"github.com/yl2chen/cidranger"
	"golang.org/x/sync/errgroup"
)

// ErrMissingColumn is returned if the header lacks the IP or Hostname column.
var ErrMissingColumn = errors.New("missing column")

// HostnameFillerPerfStats contains performance stats written to InfluxDB
// for monitoring.
type HostnameFillerPerfStats struct {
	Candidates uint64 `influx:"candidates"`
	Resolved   uint64 `influx:"resolved"`
	NoData     uint64 `influx:"nodata"`
	Skipped    uint64 `influx:"skipped"`
}

// HostnameFiller resolves host names for rows that do not have one yet,
// using a HostNamer.
type HostnameFiller struct {
	sync.Mutex
	Logger    *log.Entry
	HostNamer util.HostNamer
	Columns   types.Columns
	Filter    *IPFilter
	Workers   int
	PerfStats HostnameFillerPerfStats
}

// MakeHostnameFiller returns a new HostnameFiller, backed by the passed
// HostNamer and operating on the given columns.
func MakeHostnameFiller(hn util.HostNamer, cols types.Columns) *HostnameFiller {
	return &HostnameFiller{
		Logger: log.WithFields(log.Fields{
			"domain": "filler",
		}),
		HostNamer: hn,
		Columns:   cols,
		Filter:    MakeIPFilter(),
		Workers:   1,
	}
}

// EnableOnlyPrivateIPRanges ensures that only rows with private (RFC1918)
// IP addresses are resolved.
func (a *HostnameFiller) EnableOnlyPrivateIPRanges() {
	a.Filter.PrivateRangesOnly = true
}

// SetSkipRanges excludes rows with IP addresses in the given ranges from
// resolution.
func (a *HostnameFiller) SetSkipRanges(ranger cidranger.Ranger) {
	a.Filter.SkipRanges = ranger
}

func (a *HostnameFiller) checkHeader(header types.Header) error {
	for _, col := range []string{a.Columns.IP, a.Columns.Hostname} {
		if !header.Has(col) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return nil
}

func (a *HostnameFiller) resolve(ctx context.Context, row *types.Row) error {
	ip := row.Get(a.Columns.IP)
	res, err := a.HostNamer.ReverseLookup(ctx, ip)
	if err != nil {
		return fmt.Errorf("row %d (%s): %w", row.RowNumber, ip, err)
	}
	row.Set(a.Columns.Hostname, res.String())
	a.Lock()
	if res.IsNoData() {
		a.PerfStats.NoData++
	} else {
		a.PerfStats.Resolved++
	}
	a.Unlock()
	a.Logger.WithFields(log.Fields{
		"row":      row.RowNumber,
		"ip":       ip,
		"hostname": res.String(),
	}).Debug("row resolved")
	return nil
}

// ResolveUnknownHostnames looks up host names for all rows with an empty
// Hostname cell and writes the results into these rows. It returns the
// mutated rows in their original order. Rows with any other Hostname value,
// including a previous "no data" marker, are neither changed nor returned.
// The first lookup backend error aborts processing and is returned.
func (a *HostnameFiller) ResolveUnknownHostnames(ctx context.Context,
	header types.Header, rows []*types.Row) ([]*types.Row, error) {
	if err := a.checkHeader(header); err != nil {
		return nil, err
	}

	candidates := make([]*types.Row, 0)
	var skipped uint64
	for _, row := range rows {
		if row.Get(a.Columns.Hostname) != "" {
			continue
		}
		if !a.Filter.Allowed(row.Get(a.Columns.IP)) {
			skipped++
			continue
		}
		candidates = append(candidates, row)
	}
	a.Lock()
	a.PerfStats.Candidates += uint64(len(candidates))
	a.PerfStats.Skipped += skipped
	a.Unlock()

	if a.Workers <= 1 {
		for _, row := range candidates {
			if err := a.resolve(ctx, row); err != nil {
				return nil, err
			}
		}
		return candidates, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Workers)
	for _, row := range candidates {
		row := row
		g.Go(func() error {
			return a.resolve(gctx, row)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return candidates, nil
}

// SubmitStats submits the current counters via the given encoder and resets
// them.
func (a *HostnameFiller) SubmitStats(sc *util.PerformanceStatsEncoder) error {
	a.Lock()
	defer a.Unlock()
	if sc != nil {
		if err := sc.Submit(a.PerfStats); err != nil {
			return err
		}
	}
	a.PerfStats = HostnameFillerPerfStats{}
	return nil
}
