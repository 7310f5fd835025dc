package util

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

const (
	// IPv4ReverseSuffix is the zone used for IPv4 reverse lookups.
	IPv4ReverseSuffix = ".in-addr.arpa"
)

// ReverseNameIPv4 builds the PTR query name for a dotted-quad IPv4 address,
// e.g. "8.8.4.4" becomes "4.4.8.8.in-addr.arpa". Anything that is not
// exactly four decimal octets in the 0..255 range is rejected.
func ReverseNameIPv4(ip string) (string, error) {
	octets := strings.Split(strings.TrimSpace(ip), ".")
	if len(octets) != 4 {
		return "", fmt.Errorf("invalid IPv4 address %q: expected 4 octets, got %d", ip, len(octets))
	}
	for _, o := range octets {
		if !isOctet(o) {
			return "", fmt.Errorf("invalid IPv4 address %q: bad octet %q", ip, o)
		}
	}
	for i, j := 0, len(octets)-1; i < j; i, j = i+1, j-1 {
		octets[i], octets[j] = octets[j], octets[i]
	}
	return strings.Join(octets, ".") + IPv4ReverseSuffix, nil
}

func isOctet(s string) bool {
	if len(s) == 0 || len(s) > 3 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	v, _ := strconv.Atoi(s)
	return v <= 255
}

// ReverseName builds the PTR query name for an IP address. IPv4 uses the
// octet reversal of ReverseNameIPv4; IPv6 addresses get their ip6.arpa
// nibble name if allowIPv6 is set.
func ReverseName(ip string, allowIPv6 bool) (string, error) {
	ip = strings.TrimSpace(ip)
	if !strings.Contains(ip, ":") {
		return ReverseNameIPv4(ip)
	}
	if !allowIPv6 {
		return "", fmt.Errorf("invalid IPv4 address %q: IPv6 lookups disabled", ip)
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IPv6 address %q", ip)
	}
	name, err := dns.ReverseAddr(ip)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(name, "."), nil
}

// CanonicalRecordType validates a record type given by mnemonic ("A", "mx")
// or by number ("28") and returns its canonical mnemonic.
func CanonicalRecordType(rrtype string) (string, error) {
	rrtype = strings.ToUpper(strings.TrimSpace(rrtype))
	if rrtype == "" {
		return "", ErrUnknownRecordType
	}
	if _, ok := dns.StringToType[rrtype]; ok {
		return rrtype, nil
	}
	if n, err := strconv.ParseUint(rrtype, 10, 16); err == nil {
		if name, ok := dns.TypeToString[uint16(n)]; ok {
			return name, nil
		}
		return rrtype, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownRecordType, rrtype)
}
