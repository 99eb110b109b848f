// Package dnscheck resolves hostnames against an upstream DNS server,
// bypassing the hosts file, so that managed entries can be compared with
// what the name would resolve to without them.
package dnscheck
