package util

// DCSO hostnamer
// Copyright (c) 2017, 2026, DCSO GmbH

import (
	"bytes"
	"strings"
	"sync"

	"github.com/DCSO/fluxline"
	log "github.com/sirupsen/logrus"
)

// PerformanceStatsEncoder is a component to collect, encode and submit run
// statistics in InfluxDB line protocol via a StatsSubmitter.
type PerformanceStatsEncoder struct {
	sync.Mutex
	Encoder   *fluxline.Encoder
	Buffer    bytes.Buffer
	Logger    *log.Entry
	Tags      map[string]string
	Submitter StatsSubmitter
}

// MakePerformanceStatsEncoder creates a new stats encoder, submitting via
// the given StatsSubmitter. The given tags are added to every line.
func MakePerformanceStatsEncoder(statsSubmitter StatsSubmitter, tags map[string]string) *PerformanceStatsEncoder {
	a := &PerformanceStatsEncoder{
		Logger: log.WithFields(log.Fields{
			"domain": "statscollect",
		}),
		Submitter: statsSubmitter,
		Tags:      make(map[string]string),
	}
	for k, v := range tags {
		a.Tags[k] = v
	}
	a.Encoder = fluxline.NewEncoder(&a.Buffer)
	return a
}

// Submit encodes the data annotated with 'influx' tags in the passed struct and
// sends it to the configured submitter.
func (a *PerformanceStatsEncoder) Submit(val interface{}) error {
	a.Lock()
	defer a.Unlock()
	a.Buffer.Reset()
	err := a.Encoder.EncodeWithoutTypes(ToolName, val, a.Tags)
	if err != nil {
		a.Logger.Warn(err)
	}
	line := strings.TrimSpace(a.Buffer.String())
	if line == "" {
		a.Logger.Warn("skipping empty influx line")
		return nil
	}
	if err != nil {
		return err
	}
	return a.Submitter.SubmitWithHeaders([]byte(line), "", "text/plain", map[string]string{
		"database":         "telegraf",
		"retention_policy": "default",
	})
}
