package processing

// DCSO hostnamer
// Copyright (c) 2019, 2026, DCSO GmbH

import (
	"encoding/json"
	"time"

	"github.com/DCSO/hostnamer/util"

	log "github.com/sirupsen/logrus"
)

// ReportRoutingKey is the routing key fill reports are submitted with.
const ReportRoutingKey = "hostnames"

// ReportChunk represents a fill report for transmission via AMQP.
type ReportChunk struct {
	Timestamp time.Time  `json:"timestamp"`
	SensorID  string     `json:"sensor_id"`
	Source    string     `json:"source,omitempty"`
	Report    FillReport `json:"report"`
}

// ReportShipper sends fill reports to an exchange via a StatsSubmitter.
type ReportShipper struct {
	Submitter util.StatsSubmitter
	SensorID  string
	Source    string
	Logger    *log.Entry
}

// MakeReportShipper returns a new ReportShipper submitting via s. source
// identifies the filled data store in the shipped reports.
func MakeReportShipper(s util.StatsSubmitter, source string) (*ReportShipper, error) {
	sensorID, err := util.GetSensorID()
	if err != nil {
		return nil, err
	}
	return &ReportShipper{
		Submitter: s,
		SensorID:  sensorID,
		Source:    source,
		Logger: log.WithFields(log.Fields{
			"domain": "reportshipper",
		}),
	}, nil
}

// Ship marshals and submits the given report.
func (cs *ReportShipper) Ship(report FillReport) error {
	chunk := ReportChunk{
		Timestamp: time.Now(),
		SensorID:  cs.SensorID,
		Source:    cs.Source,
		Report:    report,
	}
	json, err := json.Marshal(chunk)
	if err != nil {
		return err
	}
	if err = cs.Submitter.Submit(json, ReportRoutingKey, "application/json"); err != nil {
		return err
	}
	cs.Logger.WithFields(log.Fields{
		"written": report.Written,
		"bytes":   len(json),
	}).Debug("report shipped")
	return nil
}
