package hosts

import (
	"net/netip"
	"net/url"
	"strconv"
	"strings"
)

// LineKind classifies a single hosts-file line.
type LineKind uint8

const (
	// LineSkipped is an empty or comment-only line.
	LineSkipped LineKind = iota
	// LineMalformed violates the hosts grammar.
	LineMalformed
	// LineBenign maps hostnames to a private, loopback or reserved address.
	LineBenign
	// LineDangerous maps hostnames to a publicly routable address.
	LineDangerous
)

func (k LineKind) String() string {
	switch k {
	case LineSkipped:
		return "skipped"
	case LineMalformed:
		return "malformed"
	case LineBenign:
		return "benign"
	case LineDangerous:
		return "dangerous"
	default:
		return "unknown"
	}
}

// LineResult is the outcome of validating one line.
type LineResult struct {
	Kind LineKind
	// Entry is the line with its comment removed and surrounding whitespace trimmed.
	Entry string
	// Reason explains why a line is malformed.
	Reason string
}

// StripComment removes everything from the first '#' and trims the rest.
func StripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

// ValidateLine validates a single hosts-file line.
func ValidateLine(line string) LineResult {
	entry := StripComment(line)
	if entry == "" {
		return LineResult{Kind: LineSkipped}
	}

	fields := strings.Fields(entry)
	if len(fields) < 2 {
		return LineResult{Kind: LineMalformed, Entry: entry, Reason: "expected an address followed by at least one hostname"}
	}

	addr, err := netip.ParseAddr(fields[0])
	if err != nil {
		return LineResult{Kind: LineMalformed, Entry: entry, Reason: "invalid IP address " + strconv.Quote(fields[0])}
	}

	for _, hostname := range fields[1:] {
		if !IsValidHostname(hostname) {
			return LineResult{Kind: LineMalformed, Entry: entry, Reason: "invalid hostname " + strconv.Quote(hostname)}
		}
	}

	if IsDangerous(addr) {
		return LineResult{Kind: LineDangerous, Entry: entry}
	}
	return LineResult{Kind: LineBenign, Entry: entry}
}

// IsValidHostname reports whether token is a bare URL authority consisting of a host only.
// The token must survive the URL parser unchanged: no userinfo, port, path, query or
// fragment, and no brackets or escapes that the parser would rewrite.
// Letter case is kept as written, so mixed-case names are accepted.
func IsValidHostname(token string) bool {
	u, err := url.Parse("//" + token)
	if err != nil {
		return false
	}
	if u.Host == "" || u.User != nil || u.Port() != "" {
		return false
	}
	if u.Path != "" || u.RawPath != "" || u.RawQuery != "" || u.ForceQuery || u.Fragment != "" || u.Opaque != "" {
		return false
	}
	return u.Host == token && u.Hostname() == token
}

// ParseEntry splits a valid hosts line into its address and hostnames.
func ParseEntry(line string) (netip.Addr, []string, bool) {
	res := ValidateLine(line)
	if res.Kind != LineBenign && res.Kind != LineDangerous {
		return netip.Addr{}, nil, false
	}
	fields := strings.Fields(res.Entry)
	return netip.MustParseAddr(fields[0]), fields[1:], true
}
