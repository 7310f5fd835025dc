package util

// DCSO hostnamer
// Copyright (c) 2020, 2026, DCSO GmbH

import (
	"context"

	"github.com/DCSO/hostnamer/types"
)

// HostNamer is an interface specifying a component that provides
// host names for IP addresses passed as strings.
//
// Implementations must only return an error for failures of the lookup
// backend itself (e.g. HTTP status errors). Lookups that merely yield
// nothing are reported as a "no data" LookupResult.
type HostNamer interface {
	ReverseLookup(ctx context.Context, ipAddr string) (types.LookupResult, error)
}
