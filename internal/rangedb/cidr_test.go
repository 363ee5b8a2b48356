package rangedb_test

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/ipregion/regiond/internal/rangedb"
	"github.com/ipregion/regiond/internal/rgdtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrefix(t *testing.T) {
	testCases := []struct {
		name        string
		in          string
		wantErrMsg  string
		wantNetwork uint32
		wantMask    uint32
		wantPrefix  uint8
	}{{
		name:        "full_host",
		in:          "192.0.2.17/32",
		wantErrMsg:  "",
		wantNetwork: 0xC0000211,
		wantMask:    0xFFFFFFFF,
		wantPrefix:  32,
	}, {
		name:        "whole_space",
		in:          "0.0.0.0/0",
		wantErrMsg:  "",
		wantNetwork: 0,
		wantMask:    0,
		wantPrefix:  0,
	}, {
		name:        "host_bits_zeroed",
		in:          "10.0.1.5/24",
		wantErrMsg:  "",
		wantNetwork: 0x0A000100,
		wantMask:    0xFFFFFF00,
		wantPrefix:  24,
	}, {
		name:       "no_slash",
		in:         "10.0.0.0",
		wantErrMsg: `cidr "10.0.0.0": bad format`,
	}, {
		name:       "extra_slash",
		in:         "10.0.0.0/8/8",
		wantErrMsg: `cidr "10.0.0.0/8/8": bad format`,
	}, {
		name:       "prefix_too_long",
		in:         "10.0.0.0/33",
		wantErrMsg: `cidr "10.0.0.0/33": prefix length out of range`,
	}, {
		name: "negative_prefix",
		in:   "10.0.0.0/-1",
		wantErrMsg: `cidr "10.0.0.0/-1": bad prefix length: ` +
			`strconv.ParseUint: parsing "-1": invalid syntax`,
	}, {
		name:       "bad_octet",
		in:         "999.1.1.1/8",
		wantErrMsg: `cidr "999.1.1.1/8": ParseAddr("999.1.1.1"): IPv4 field has value >255`,
	}, {
		name:       "ipv6",
		in:         "2001:db8::/32",
		wantErrMsg: `cidr "2001:db8::/32": not an ipv4 address`,
	}, {
		name:       "empty",
		in:         "",
		wantErrMsg: `cidr "": bad format`,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := rangedb.ParsePrefix(tc.in)
			testutil.AssertErrorMsg(t, tc.wantErrMsg, err)
			if tc.wantErrMsg != "" {
				return
			}

			rgdtest.AssertEqualRecords(t, rangedb.CIDRRecord{
				Network:   tc.wantNetwork,
				Mask:      tc.wantMask,
				PrefixLen: tc.wantPrefix,
			}, rec)
		})
	}
}

func TestParsePrefix_masks(t *testing.T) {
	for n := 0; n <= 32; n++ {
		t.Run(fmt.Sprintf("prefix_%d", n), func(t *testing.T) {
			rec, err := rangedb.ParsePrefix(fmt.Sprintf("255.255.255.255/%d", n))
			require.NoError(t, err)

			mask := rec.Mask
			assert.Equal(t, n, bits.OnesCount32(mask))
			if n > 0 {
				assert.Equal(t, n, bits.LeadingZeros32(^mask))
			} else {
				assert.Equal(t, uint32(0), mask)
			}

			// Re-masking an already masked network with the same mask must
			// yield itself.
			assert.Equal(t, rec.Network, rec.Network&mask)
		})
	}
}
