package processing

// DCSO hostnamer
// Copyright (c) 2018, 2026, DCSO GmbH

import (
	"bufio"
	"io"
	"net"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/yl2chen/cidranger"
)

// PrivateRanges lists the RFC1918 and ULA networks considered private.
var PrivateRanges = []string{
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"fc00::/7",
}

// IPFilter decides which IP addresses are eligible for lookup. If
// PrivateRangesOnly is set, only addresses in PrivateRanges pass. Addresses
// contained in SkipRanges never pass.
type IPFilter struct {
	Private           cidranger.Ranger
	PrivateRangesOnly bool
	SkipRanges        cidranger.Ranger
}

// MakeIPFilter returns a new IPFilter letting all addresses pass.
func MakeIPFilter() *IPFilter {
	f := &IPFilter{
		Private: cidranger.NewPCTrieRanger(),
	}
	for _, cidr := range PrivateRanges {
		_, block, err := net.ParseCIDR(cidr)
		if err != nil {
			log.Fatalf("cannot parse fixed private IP range %v", cidr)
		}
		f.Private.Insert(cidranger.NewBasicRangerEntry(*block))
	}
	return f
}

// Allowed returns true if the given address should be looked up. Strings
// that do not parse as IP addresses are allowed, so that the resolver can
// report them as invalid.
func (f *IPFilter) Allowed(ipAddr string) bool {
	ip := net.ParseIP(strings.TrimSpace(ipAddr))
	if ip == nil {
		return !f.PrivateRangesOnly
	}
	if f.SkipRanges != nil {
		skip, err := f.SkipRanges.Contains(ip)
		if err != nil {
			log.Warn(err)
		} else if skip {
			return false
		}
	}
	if f.PrivateRangesOnly {
		isPrivate, err := f.Private.Contains(ip)
		if err != nil {
			log.Warn(err)
			return false
		}
		return isPrivate
	}
	return true
}

// RangerFromReader builds a ranger from one CIDR per line. Empty lines and
// lines starting with '#' are ignored, invalid ranges are skipped.
func RangerFromReader(r io.Reader) (cidranger.Ranger, error) {
	ranger := cidranger.NewPCTrieRanger()
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		lineText := strings.TrimSpace(scanner.Text())
		if lineText == "" || strings.HasPrefix(lineText, "#") {
			continue
		}
		_, network, err := net.ParseCIDR(lineText)
		if err != nil {
			log.Warnf("invalid IP range %s, skipping", lineText)
		} else {
			log.Debugf("adding IP range %s", lineText)
			ranger.Insert(cidranger.NewBasicRangerEntry(*network))
		}
	}
	return ranger, scanner.Err()
}

// RangerFromFile builds a ranger from the CIDR list in the given file.
func RangerFromFile(IPListFilename string) (cidranger.Ranger, error) {
	inFile, err := os.Open(IPListFilename)
	if err != nil {
		return nil, err
	}
	defer inFile.Close()
	return RangerFromReader(inFile)
}
