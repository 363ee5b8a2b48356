package rangedb

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/ipregion/regiond/internal/region"
)

// CIDRRecord is one published IPv4 address range.  Records are immutable once
// constructed.
type CIDRRecord struct {
	// Region is the short code of the region owning the range.  It may be
	// empty when the registry publishes a null region.
	Region region.Code

	// Service is the name of the provider's service the range belongs to.
	Service string

	// Network is the address of the range with the host bits zeroed out.
	// Network == raw & Mask holds for all records produced by [ParsePrefix].
	Network uint32

	// Mask is the network mask derived from PrefixLen.
	Mask uint32

	// PrefixLen is the length of the network prefix, between 0 and 32.
	PrefixLen uint8
}

// ParsePrefix parses an IPv4 CIDR string of the form "a.b.c.d/n" into a
// record with the region and service fields left empty.  IPv6 prefixes and
// malformed strings are rejected.
func ParsePrefix(s string) (rec CIDRRecord, err error) {
	addrStr, prefixStr, ok := strings.Cut(s, "/")
	if !ok || strings.Contains(prefixStr, "/") {
		return CIDRRecord{}, fmt.Errorf("cidr %q: bad format", s)
	}

	addr, err := netip.ParseAddr(addrStr)
	if err != nil {
		return CIDRRecord{}, fmt.Errorf("cidr %q: %w", s, err)
	} else if !addr.Is4() {
		return CIDRRecord{}, fmt.Errorf("cidr %q: not an ipv4 address", s)
	}

	n, err := strconv.ParseUint(prefixStr, 10, 8)
	if err != nil {
		return CIDRRecord{}, fmt.Errorf("cidr %q: bad prefix length: %w", s, err)
	} else if n > 32 {
		return CIDRRecord{}, fmt.Errorf("cidr %q: prefix length out of range", s)
	}

	// The whole-space "/0" prefix has the zero mask.
	var mask uint32
	if n > 0 {
		mask = ^uint32(0) << (32 - n)
	}

	raw := ipv4ToUint32(addr)

	return CIDRRecord{
		Network:   raw & mask,
		Mask:      mask,
		PrefixLen: uint8(n),
	}, nil
}

// ipv4ToUint32 returns the 32-bit big-endian integer value of addr.  addr must
// be a valid IPv4 address.
func ipv4ToUint32(addr netip.Addr) (v uint32) {
	b := addr.As4()

	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
