package hosts

import "net/netip"

// nonPublicPrefixes are the private-use and reserved blocks from the IANA
// special-purpose address registries. An address outside all of them is
// publicly routable.
var nonPublicPrefixes = mustParsePrefixes(
	// IPv4
	"0.0.0.0/8",          // "this network", includes the 0.0.0.0 sinkhole
	"10.0.0.0/8",         // private
	"100.64.0.0/10",      // shared address space (carrier-grade NAT)
	"127.0.0.0/8",        // loopback
	"169.254.0.0/16",     // link-local
	"172.16.0.0/12",      // private
	"192.0.0.0/24",       // IETF protocol assignments
	"192.0.2.0/24",       // TEST-NET-1
	"192.168.0.0/16",     // private
	"198.18.0.0/15",      // benchmarking
	"198.51.100.0/24",    // TEST-NET-2
	"203.0.113.0/24",     // TEST-NET-3
	"224.0.0.0/4",        // multicast
	"240.0.0.0/4",        // reserved
	"255.255.255.255/32", // limited broadcast

	// IPv6
	"::/128",          // unspecified
	"::1/128",         // loopback
	"64:ff9b:1::/48",  // local-use IPv4/IPv6 translation
	"100::/64",        // discard-only
	"2001::/23",       // IETF protocol assignments
	"2001:db8::/32",   // documentation
	"fc00::/7",        // unique local
	"fe80::/10",       // link-local
	"ff00::/8",        // multicast
	"::/8",            // reserved by IETF
	"100::/8",         // reserved by IETF
	"200::/7",         // reserved by IETF
	"400::/6",         // reserved by IETF
	"800::/5",         // reserved by IETF
	"1000::/4",        // reserved by IETF
	"4000::/3",        // reserved by IETF
	"6000::/3",        // reserved by IETF
	"8000::/3",        // reserved by IETF
	"a000::/3",        // reserved by IETF
	"c000::/3",        // reserved by IETF
	"e000::/4",        // reserved by IETF
	"f000::/5",        // reserved by IETF
	"f800::/6",        // reserved by IETF
	"fe00::/9",        // reserved by IETF
)

func mustParsePrefixes(cidrs ...string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(cidrs))
	for _, cidr := range cidrs {
		prefixes = append(prefixes, netip.MustParsePrefix(cidr))
	}
	return prefixes
}

// IsDangerous reports whether addr is publicly routable, i.e. a hosts entry using
// it sends traffic to a real remote host rather than a sinkhole.
// IPv4-mapped IPv6 addresses are classified by the IPv4 address they carry.
func IsDangerous(addr netip.Addr) bool {
	if !addr.IsValid() {
		return false
	}
	addr = addr.WithZone("").Unmap()
	for _, prefix := range nonPublicPrefixes {
		if prefix.Contains(addr) {
			return false
		}
	}
	return true
}
