package api

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/lost-hosts/lost/src/internal/hashing"
	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/lost-hosts/lost/src/internal/registry"
)

// tokenLifetime is how long a token stays redeemable after its delay has passed.
const tokenLifetime = 10 * time.Minute

type pendingConfirmation struct {
	url         string
	fingerprint string
	notBefore   time.Time
	expires     time.Time
}

// Confirmations issues and redeems single-use tokens for dangerous entries.
// A token is bound to a source URL and to the exact set of entries shown,
// and cannot be redeemed before the deliberation delay has passed.
type Confirmations struct {
	mu      sync.Mutex
	delay   time.Duration
	now     func() time.Time
	pending map[string]pendingConfirmation
}

func NewConfirmations(delay time.Duration) *Confirmations {
	if delay < 0 {
		delay = 0
	}
	return &Confirmations{
		delay:   delay,
		now:     time.Now,
		pending: make(map[string]pendingConfirmation),
	}
}

// Challenge is returned to the client when entries need confirmation.
type Challenge struct {
	URL       string    `json:"url"`
	Token     string    `json:"token"`
	NotBefore time.Time `json:"not_before"`
	Entries   []string  `json:"entries"`
	TooEarly  bool      `json:"too_early,omitempty"`
}

func fingerprint(entries []string) string {
	set := hashing.NewChecksumStringSet()
	for _, entry := range entries {
		set.Put(entry)
	}
	sum, _ := set.GetChecksum()
	return sum
}

func newToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

func (c *Confirmations) issue(url string, entries []string) Challenge {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for token, p := range c.pending {
		if now.After(p.expires) {
			delete(c.pending, token)
		}
	}

	token := newToken()
	notBefore := now.Add(c.delay)
	c.pending[token] = pendingConfirmation{
		url:         url,
		fingerprint: fingerprint(entries),
		notBefore:   notBefore,
		expires:     notBefore.Add(tokenLifetime),
	}
	log.Infof("Confirmation required for %d entries of %s", len(entries), url)

	return Challenge{URL: url, Token: token, NotBefore: notBefore, Entries: entries}
}

// redeem consumes token if it matches url and entries and its delay has passed.
// A matching token presented too early stays pending and is returned as a too-early challenge.
func (c *Confirmations) redeem(token, url string, entries []string) (bool, *Challenge) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pending[token]
	if !ok || p.url != url || p.fingerprint != fingerprint(entries) {
		return false, nil
	}

	now := c.now()
	if now.After(p.expires) {
		delete(c.pending, token)
		return false, nil
	}
	if now.Before(p.notBefore) {
		return false, &Challenge{URL: url, Token: token, NotBefore: p.notBefore, Entries: entries, TooEarly: true}
	}

	delete(c.pending, token)
	return true, nil
}

// requestConfirmer answers confirmations for one API request.
type requestConfirmer struct {
	store      *Confirmations
	defaultURL string
	tokens     map[string]string
	challenges map[string]Challenge
}

func (c *Confirmations) forRequest(defaultURL string, tokens map[string]string) *requestConfirmer {
	return &requestConfirmer{
		store:      c,
		defaultURL: defaultURL,
		tokens:     tokens,
		challenges: make(map[string]Challenge),
	}
}

func (rc *requestConfirmer) ConfirmDangerous(entries []string, contextURL string) registry.Decision {
	url := contextURL
	if url == "" {
		url = rc.defaultURL
	}

	if token := rc.tokens[url]; token != "" {
		accepted, challenge := rc.store.redeem(token, url, entries)
		if accepted {
			log.Infof("Dangerous entries of %s confirmed", url)
			return registry.Accept
		}
		if challenge != nil {
			rc.challenges[url] = *challenge
			return registry.Abort
		}
	}

	rc.challenges[url] = rc.store.issue(url, entries)
	return registry.Abort
}

func (rc *requestConfirmer) challenge(url string) (Challenge, bool) {
	c, ok := rc.challenges[url]
	return c, ok
}
