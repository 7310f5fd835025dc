package processing

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/DCSO/hostnamer/types"
	"github.com/DCSO/hostnamer/util"
)

// MockHostNamer answers reverse lookups from a fixed table.
type MockHostNamer struct {
	sync.Mutex
	Names   map[string]types.LookupResult
	Errors  map[string]error
	Queried []string
}

func (m *MockHostNamer) ReverseLookup(ctx context.Context, ipAddr string) (types.LookupResult, error) {
	m.Lock()
	m.Queried = append(m.Queried, ipAddr)
	m.Unlock()
	if err, ok := m.Errors[ipAddr]; ok {
		return types.LookupResult{}, err
	}
	if res, ok := m.Names[ipAddr]; ok {
		return res, nil
	}
	return types.NoData(""), nil
}

var _ util.HostNamer = (*MockHostNamer)(nil)

func mustCIDR(t *testing.T, cidr string) *net.IPNet {
	t.Helper()
	_, n, err := net.ParseCIDR(cidr)
	if err != nil {
		t.Fatal(err)
	}
	return n
}
