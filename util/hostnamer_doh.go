package util

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DCSO/hostnamer/types"

	"github.com/buger/jsonparser"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultDoHEndpoint is the JSON API endpoint of Google Public DNS.
	DefaultDoHEndpoint = "https://dns.google/resolve"
	// DefaultDoHTimeout is the HTTP client timeout used if no client is given.
	DefaultDoHTimeout = 10 * time.Second

	maxResponseSize = 1 << 20
	maxMessageSize  = 256
)

var (
	errMalformedResponse = errors.New("malformed JSON response")
	errEmptyAnswer       = errors.New("empty Answer section")
)

// DoHResolver is a HostNamer that performs lookups against a
// DNS-over-HTTPS resolver speaking the JSON API (name/type query
// parameters, "Answer" array in the response).
type DoHResolver struct {
	Endpoint         string
	Client           *http.Client
	Logger           *log.Entry
	AllowIPv6        bool
	StripTrailingDot bool
}

// MakeDoHResolver returns a new DoHResolver querying the given endpoint. If
// endpoint is empty, DefaultDoHEndpoint is used; if client is nil, a client
// with DefaultDoHTimeout is created.
func MakeDoHResolver(endpoint string, client *http.Client) *DoHResolver {
	if endpoint == "" {
		endpoint = DefaultDoHEndpoint
	}
	if client == nil {
		client = &http.Client{
			Timeout: DefaultDoHTimeout,
		}
	}
	return &DoHResolver{
		Endpoint: endpoint,
		Client:   client,
		Logger: log.WithFields(log.Fields{
			"domain": "doh",
		}),
	}
}

func (r *DoHResolver) queryURL(name, rrtype string) (string, error) {
	u, err := url.Parse(r.Endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("name", name)
	q.Set("type", rrtype)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// fetch issues the GET request and returns the response body of a
// successful (200) response.
func (r *DoHResolver) fetch(ctx context.Context, name, rrtype string) ([]byte, error) {
	qURL, err := r.queryURL(name, rrtype)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, qURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/dns-json")

	r.Logger.WithFields(log.Fields{
		"name": name,
		"type": rrtype,
	}).Debug("querying resolver")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if resp.StatusCode != http.StatusOK {
		return nil, &ResolutionError{
			StatusCode: resp.StatusCode,
			Message:    statusMessage(resp, body),
		}
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

func statusMessage(resp *http.Response, body []byte) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return http.StatusText(resp.StatusCode)
	}
	if len(msg) > maxMessageSize {
		msg = msg[:maxMessageSize]
	}
	return msg
}

// checkAnswerSection verifies that body is valid JSON with an Answer array.
// A missing (or null) Answer section yields jsonparser.KeyPathNotFoundError.
func checkAnswerSection(body []byte) error {
	if !json.Valid(body) {
		return errMalformedResponse
	}
	_, vt, _, err := jsonparser.Get(body, "Answer")
	if err != nil {
		return err
	}
	if vt == jsonparser.Null {
		return jsonparser.KeyPathNotFoundError
	}
	if vt != jsonparser.Array {
		return fmt.Errorf("unexpected Answer section of type %s", vt)
	}
	return nil
}

// firstAnswerData extracts the "data" value of the first Answer record.
// Later records are not looked at.
func firstAnswerData(body []byte) (string, error) {
	if err := checkAnswerSection(body); err != nil {
		return "", err
	}
	first, ft, _, err := jsonparser.Get(body, "Answer", "[0]")
	if err == jsonparser.KeyPathNotFoundError {
		return "", errEmptyAnswer
	}
	if err != nil {
		return "", err
	}
	if ft != jsonparser.Object {
		return "", fmt.Errorf("unexpected answer record of type %s", ft)
	}
	data, err := jsonparser.GetString(first, "data")
	if err != nil {
		return "", fmt.Errorf("answer record without data: %w", err)
	}
	return data, nil
}

// answerData extracts the "data" values of all records in the Answer
// section, in the order returned. A missing (or null) Answer section yields
// jsonparser.KeyPathNotFoundError.
func answerData(body []byte) ([]string, error) {
	if err := checkAnswerSection(body); err != nil {
		return nil, err
	}

	out := make([]string, 0)
	var err error
	var cbErr error
	_, err = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if cbErr != nil {
			return
		}
		if err != nil {
			cbErr = err
			return
		}
		if dataType != jsonparser.Object {
			cbErr = fmt.Errorf("unexpected answer record of type %s", dataType)
			return
		}
		data, merr := jsonparser.GetString(value, "data")
		if merr != nil {
			cbErr = fmt.Errorf("answer record without data: %w", merr)
			return
		}
		out = append(out, data)
	}, "Answer")
	if err != nil {
		return nil, err
	}
	if cbErr != nil {
		return nil, cbErr
	}
	return out, nil
}

func (r *DoHResolver) clean(name string) string {
	if r.StripTrailingDot {
		return strings.TrimRight(name, ".")
	}
	return name
}

// ForwardLookup resolves name for the given record type (e.g. "A", "MX",
// "NS") and returns all answers joined by newlines, in the order returned
// by the resolver. Non-success HTTP responses yield a *ResolutionError. If
// the response has no Answer section, ErrNoAnswer is returned.
func (r *DoHResolver) ForwardLookup(ctx context.Context, name, recordType string) (string, error) {
	rrtype, err := CanonicalRecordType(recordType)
	if err != nil {
		return "", err
	}
	body, err := r.fetch(ctx, name, rrtype)
	if err != nil {
		return "", err
	}
	answers, err := answerData(body)
	if err != nil {
		if err == jsonparser.KeyPathNotFoundError {
			return "", ErrNoAnswer
		}
		return "", fmt.Errorf("parsing response for %s/%s: %w", name, rrtype, err)
	}
	for i, a := range answers {
		answers[i] = r.clean(a)
	}
	return strings.Join(answers, "\n"), nil
}

// ReverseLookup returns the first PTR record for the given IP address.
// Non-success HTTP responses and transport failures are returned as
// errors; everything else that prevents a name from being found (invalid
// address, missing or malformed answers) results in a "no data" result.
func (r *DoHResolver) ReverseLookup(ctx context.Context, ipAddr string) (types.LookupResult, error) {
	name, err := ReverseName(ipAddr, r.AllowIPv6)
	if err != nil {
		r.Logger.WithError(err).Debug("skipping lookup")
		return types.NoData(err.Error()), nil
	}
	body, err := r.fetch(ctx, name, "PTR")
	if err != nil {
		return types.LookupResult{}, err
	}
	data, err := firstAnswerData(body)
	if err != nil {
		if err == jsonparser.KeyPathNotFoundError {
			return types.NoData(""), nil
		}
		if err != errEmptyAnswer {
			r.Logger.WithFields(log.Fields{
				"ip":    ipAddr,
				"error": err.Error(),
			}).Warn("unusable response")
		}
		return types.NoData(err.Error()), nil
	}
	return types.Found(r.clean(data)), nil
}

// ReverseLookupBatch looks up a newline separated list of IP addresses one
// after the other and returns the results, newline separated and in input
// order. It never fails: errors for single addresses are rendered as
// "no data: <error>".
func (r *DoHResolver) ReverseLookupBatch(ctx context.Context, ips string) string {
	lines := strings.Split(ips, "\n")
	out := make([]string, len(lines))
	for i, ip := range lines {
		res, err := r.ReverseLookup(ctx, strings.TrimRight(ip, "\r"))
		if err != nil {
			res = types.NoData(err.Error())
		}
		out[i] = res.String()
	}
	return strings.Join(out, "\n")
}
