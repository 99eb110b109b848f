// Package hosts validates hosts-file text.
//
// A hosts line is an IPv4 or IPv6 address followed by one or more whitespace
// separated hostnames. Everything from the first '#' is a comment. Empty and
// comment-only lines are skipped.
//
// # Validation
//
// Validate checks a whole block and fails on the first malformed line; it does
// not collect a list of errors. A valid block may still contain dangerous
// entries: lines whose address is publicly routable, which means the entry
// redirects a name to a real remote host instead of a sinkhole such as
// 0.0.0.0 or 127.0.0.1.
//
//	res := hosts.Validate(content)
//	if !res.Valid {
//	    return fmt.Errorf("line %d: %s", res.Line, res.Reason)
//	}
//	if res.NeedsConfirmation() {
//	    // ask the user before accepting res.Dangerous
//	}
package hosts
