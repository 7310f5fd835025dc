package types

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import "strings"

// NoDataMarker is the cell value written when a lookup yields nothing.
const NoDataMarker = "no data"

// LookupResult is the outcome of a single reverse lookup: either a resolved
// name or the "no data" marker, optionally carrying a detail message
// explaining why nothing could be found.
type LookupResult struct {
	Value  string
	NoData bool
	Detail string
}

// Found returns a LookupResult for a successfully resolved name.
func Found(value string) LookupResult {
	return LookupResult{Value: value}
}

// NoData returns a LookupResult signalling that no name could be determined.
// detail may be empty.
func NoData(detail string) LookupResult {
	return LookupResult{NoData: true, Detail: detail}
}

// IsNoData returns true if the result does not carry a resolved name. Empty
// found values count as no data.
func (l LookupResult) IsNoData() bool {
	return l.NoData || l.Value == ""
}

// String renders the result in its cell representation: the resolved name,
// "no data" or "no data: <detail>".
func (l LookupResult) String() string {
	if !l.IsNoData() {
		return l.Value
	}
	if l.Detail != "" {
		return NoDataMarker + ": " + l.Detail
	}
	return NoDataMarker
}

// IsNoDataValue returns true if the given cell value is empty or a rendered
// "no data" result.
func IsNoDataValue(cell string) bool {
	return cell == "" || cell == NoDataMarker || strings.HasPrefix(cell, NoDataMarker+": ")
}
