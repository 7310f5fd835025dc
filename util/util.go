package util

// DCSO hostnamer
// Copyright (c) 2017, 2018, 2020, 2026, DCSO GmbH

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"os"
	"strings"
	"time"
)

// ToolName is a string containing the name of this software, lowercase.
var ToolName = "hostnamer"

// ToolNameUpper is a string containing the name of this software, uppercase.
var ToolNameUpper = "HOSTNAMER"

// GetSensorID returns the machine ID of the system it is being run on, or
// the string "<no_machine_id>"" if the ID cannot be determined.
func GetSensorID() (string, error) {
	if _, err := os.Stat("/etc/machine-id"); os.IsNotExist(err) {
		return "<no_machine_id>", nil
	}
	b, err := os.ReadFile("/etc/machine-id")
	if err != nil {
		return "<no_machine_id>", nil
	}
	return strings.TrimSpace(string(b)), nil
}

// MakeTLSConfig returns a TLS configuration suitable for an endpoint with private
// key stored in keyFile and corresponding certificate stored in certFile. rcas
// defines a list of root CA filenames.
// If certFile and keyFile are empty, e.g., when configuring a tls-client
// endpoint w/o mutual authentication, only the RootCA pool is populated.
// If neither certificates nor root CAs are given, the system pool is used.
func MakeTLSConfig(certFile, keyFile string, rcas []string, skipVerify bool) (*tls.Config, error) {
	certs := make([]tls.Certificate, 0, 1)

	if certFile != "" || keyFile != "" {
		c, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	var rcaPool *x509.CertPool
	if len(rcas) > 0 {
		rcaPool = x509.NewCertPool()
		for _, filename := range rcas {
			rca, err := os.ReadFile(filename)
			if err != nil {
				return nil, err
			}
			rcaPool.AppendCertsFromPEM(rca)
		}
	}

	return &tls.Config{
		Certificates:       certs,
		RootCAs:            rcaPool,
		InsecureSkipVerify: skipVerify,
	}, nil
}

// MakeHTTPClient returns a HTTP client for resolver queries with the given
// overall request timeout. tlsConfig may be nil.
func MakeHTTPClient(timeout time.Duration, tlsConfig *tls.Config) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if tlsConfig != nil {
		transport.TLSClientConfig = tlsConfig
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
