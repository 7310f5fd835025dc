package util

// DCSO hostnamer
// Copyright (c) 2018, 2026, DCSO GmbH

import (
	"unicode"

	log "github.com/sirupsen/logrus"
)

// DummySubmitter is a StatsSubmitter that just logs submissions without
// sending them over the network.
type DummySubmitter struct {
	Logger   *log.Entry
	SensorID string
	Count    int
}

func isASCIIPrintable(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || !(unicode.IsPrint(r) || unicode.IsSpace(r)) {
			return false
		}
	}
	return true
}

// MakeDummySubmitter creates a new submitter just logging to the default log
// target.
func MakeDummySubmitter() (*DummySubmitter, error) {
	mySubmitter := &DummySubmitter{
		Logger: log.WithFields(log.Fields{
			"domain":    "submitter",
			"submitter": "dummy",
		}),
	}
	sensorID, err := GetSensorID()
	if err != nil {
		return nil, err
	}
	mySubmitter.SensorID = sensorID
	return mySubmitter, nil
}

// UseCompression is a no-op in this implementation.
func (s *DummySubmitter) UseCompression() {}

// Submit logs the rawData payload.
func (s *DummySubmitter) Submit(rawData []byte, key string, contentType string) error {
	return s.SubmitWithHeaders(rawData, key, contentType, nil)
}

// SubmitWithHeaders logs the rawData payload together with the routing key
// and content type.
func (s *DummySubmitter) SubmitWithHeaders(rawData []byte, key string, contentType string, myHeaders map[string]string) error {
	s.Count++
	l := s.Logger.WithFields(log.Fields{
		"key":          key,
		"content_type": contentType,
	})
	bytestring := string(rawData)
	if isASCIIPrintable(bytestring) {
		l.Info(bytestring)
	} else {
		l.Infof("submitting non-printable byte array of length %d", len(rawData))
	}
	return nil
}

// Finish is a no-op in this implementation.
func (s *DummySubmitter) Finish() {}
