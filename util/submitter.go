package util

// DCSO hostnamer
// Copyright (c) 2017, 2026, DCSO GmbH

// StatsSubmitter is an interface for an entity that sends run statistics and
// reports to an endpoint.
type StatsSubmitter interface {
	Submit(rawData []byte, key string, contentType string) error
	SubmitWithHeaders(rawData []byte, key string, contentType string, myHeaders map[string]string) error
	UseCompression()
	Finish()
}
