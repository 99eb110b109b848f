package dnscheck

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/miekg/dns"
)

const (
	defaultDNSPort = "53"

	DefaultTimeout = 3 * time.Second
)

// Resolver queries a single upstream DNS server over UDP.
type Resolver struct {
	address string
	client  *dns.Client
}

// NewResolver creates a resolver for address ("host" or "host:port").
func NewResolver(address string, timeout time.Duration) (*Resolver, error) {
	host := address
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, defaultDNSPort)
	}
	if _, _, err := net.SplitHostPort(host); err != nil {
		return nil, fmt.Errorf("invalid DNS server address %q: %w", address, err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Resolver{
		address: host,
		client: &dns.Client{
			Net:     "udp",
			Timeout: timeout,
		},
	}, nil
}

// Address returns the upstream server address.
func (r *Resolver) Address() string {
	return r.address
}

// Resolve returns the A and AAAA records of hostname. A name that does not
// exist resolves to an empty list.
func (r *Resolver) Resolve(ctx context.Context, hostname string) ([]netip.Addr, error) {
	var addrs []netip.Addr
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		found, err := r.query(ctx, hostname, qtype)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, found...)
	}
	return addrs, nil
}

func (r *Resolver) query(ctx context.Context, hostname string, qtype uint16) ([]netip.Addr, error) {
	req := new(dns.Msg)
	req.SetQuestion(dns.Fqdn(hostname), qtype)
	req.RecursionDesired = true

	log.Debugf("[%04x] Querying %s for %s %s", req.Id, r.address, hostname, dns.TypeToString[qtype])

	resp, _, err := r.client.ExchangeContext(ctx, req, r.address)
	if err != nil {
		return nil, fmt.Errorf("query %s %s: %w", dns.TypeToString[qtype], hostname, err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, nil
	default:
		return nil, fmt.Errorf("query %s %s: %s", dns.TypeToString[qtype], hostname, dns.RcodeToString[resp.Rcode])
	}

	var addrs []netip.Addr
	for _, rr := range resp.Answer {
		var ip net.IP
		switch record := rr.(type) {
		case *dns.A:
			ip = record.A
		case *dns.AAAA:
			ip = record.AAAA
		default:
			continue
		}
		if addr, ok := netip.AddrFromSlice(ip); ok {
			addrs = append(addrs, addr.Unmap())
		}
	}
	return addrs, nil
}
