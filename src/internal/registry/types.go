package registry

import (
	"context"
	"time"
)

// Fetcher downloads the hosts text published at a source URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string, timeout time.Duration) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string, timeout time.Duration) (string, error) {
	return f(ctx, url, timeout)
}

// Decision is the user's answer to a dangerous-entry warning.
type Decision int

const (
	Abort Decision = iota
	Accept
)

func (d Decision) String() string {
	if d == Accept {
		return "accept"
	}
	return "abort"
}

// Confirmer asks whether entries pointing at public addresses may be written.
// contextURL is empty when a new source is being added.
type Confirmer interface {
	ConfirmDangerous(entries []string, contextURL string) Decision
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(entries []string, contextURL string) Decision

func (f ConfirmerFunc) ConfirmDangerous(entries []string, contextURL string) Decision {
	return f(entries, contextURL)
}

// Persister stores a serialized document.
type Persister interface {
	Persist(data []byte) error
}

// PersisterFunc adapts a function to the Persister interface.
type PersisterFunc func(data []byte) error

func (f PersisterFunc) Persist(data []byte) error {
	return f(data)
}

// MatchPolicy controls how add and remove find an existing source by URL.
type MatchPolicy string

const (
	// MatchExact compares the source URL for equality.
	MatchExact MatchPolicy = "exact"
	// MatchSubstring accepts any source whose marker contains the URL.
	MatchSubstring MatchPolicy = "substring"
)

// Status is the result of an operation on a single source.
type Status string

const (
	StatusAdded       Status = "added"
	StatusUpdated     Status = "updated"
	StatusUnchanged   Status = "unchanged"
	StatusRemoved     Status = "removed"
	StatusRefused     Status = "refused"
	StatusInvalid     Status = "invalid"
	StatusFetchFailed Status = "fetch_failed"
	StatusRejected    Status = "rejected"
)

// Failed reports whether the status represents an error rather than a decision.
func (s Status) Failed() bool {
	switch s {
	case StatusInvalid, StatusFetchFailed, StatusRejected:
		return true
	default:
		return false
	}
}

// Outcome describes what an operation did to one source.
type Outcome struct {
	URL       string
	Status    Status
	Dangerous []string
	Checksum  string
	Err       error
}

const DefaultTimeout = 10 * time.Second

// Options configures a Registry.
type Options struct {
	Fetcher   Fetcher
	Confirmer Confirmer
	Match     MatchPolicy
	Timeout   time.Duration
}
