package util

// DCSO hostnamer
// Copyright (c) 2020, 2026, DCSO GmbH

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/DCSO/hostnamer/types"
)

// HostNamerRDNS is a HostNamer that determines host names via reverse DNS
// lookups using the system resolver instead of a DoH endpoint.
type HostNamerRDNS struct {
	Resolver *net.Resolver
}

// NewHostNamerRDNS returns a new HostNamerRDNS using the default system
// resolver.
func NewHostNamerRDNS() *HostNamerRDNS {
	return &HostNamerRDNS{
		Resolver: net.DefaultResolver,
	}
}

// ReverseLookup returns the first host name for a given IP address.
func (n *HostNamerRDNS) ReverseLookup(ctx context.Context, ipAddr string) (types.LookupResult, error) {
	if net.ParseIP(strings.TrimSpace(ipAddr)) == nil {
		return types.NoData("invalid IP address " + ipAddr), nil
	}
	hns, err := n.Resolver.LookupAddr(ctx, strings.TrimSpace(ipAddr))
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return types.NoData(""), nil
		}
		return types.LookupResult{}, err
	}
	if len(hns) == 0 {
		return types.NoData(""), nil
	}
	return types.Found(strings.TrimRight(hns[0], ".")), nil
}
