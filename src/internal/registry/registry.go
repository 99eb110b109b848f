package registry

import (
	"context"
	"fmt"
	"iter"
	neturl "net/url"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/lost-hosts/lost/src/internal/document"
	"github.com/lost-hosts/lost/src/internal/errors"
	"github.com/lost-hosts/lost/src/internal/hashing"
	"github.com/lost-hosts/lost/src/internal/hosts"
	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/lost-hosts/lost/src/internal/metrics"
)

const (
	opAdd    = "add"
	opUpdate = "update"
	opRemove = "remove"
)

var validate = validator.New()

// Registry owns a parsed document and is its only mutator.
// It is not safe for concurrent use.
type Registry struct {
	doc   *document.Document
	dirty bool

	fetcher   Fetcher
	confirmer Confirmer
	match     MatchPolicy
	timeout   time.Duration
}

// New wraps doc. A nil document is treated as an empty hosts file.
func New(doc *document.Document, opts Options) *Registry {
	if doc == nil {
		doc = &document.Document{}
	}
	if opts.Match == "" {
		opts.Match = MatchExact
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	metrics.SetSources(len(doc.Sources))

	return &Registry{
		doc:       doc,
		fetcher:   opts.Fetcher,
		confirmer: opts.Confirmer,
		match:     opts.Match,
		timeout:   opts.Timeout,
	}
}

// Document returns the live document.
func (r *Registry) Document() *document.Document {
	return r.doc
}

// Dirty reports whether the document changed since it was loaded or last saved.
func (r *Registry) Dirty() bool {
	return r.dirty
}

// Len returns the number of sources.
func (r *Registry) Len() int {
	return len(r.doc.Sources)
}

// SetConfirmer replaces the confirmer used for subsequent operations.
func (r *Registry) SetConfirmer(c Confirmer) {
	r.confirmer = c
}

// URLs yields the source URLs in document order.
func (r *Registry) URLs() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, src := range r.doc.Sources {
			if !yield(src.URL) {
				return
			}
		}
	}
}

// Contains reports whether a source for url exists under the configured match policy.
func (r *Registry) Contains(url string) bool {
	return r.find(url) >= 0
}

func (r *Registry) find(url string) int {
	if r.match == MatchSubstring {
		return r.doc.IndexContaining(url)
	}
	return r.doc.IndexExact(url)
}

// Add appends a new source after validating its URL and content.
// Dangerous content is only added when the confirmer accepts it.
func (r *Registry) Add(url, content string) (Outcome, error) {
	if err := r.checkNewURL(url); err != nil {
		return r.finish(opAdd, Outcome{URL: url, Status: StatusRejected, Err: err}), err
	}
	return r.addContent(url, content)
}

func (r *Registry) addContent(url, content string) (Outcome, error) {
	outcome := Outcome{URL: url, Checksum: hashing.ContentChecksum(content)}

	result, err := checkContent(content)
	if err != nil {
		outcome.Status = StatusInvalid
		outcome.Err = err
		return r.finish(opAdd, outcome), err
	}

	if result.NeedsConfirmation() {
		outcome.Dangerous = result.Dangerous
		if !r.confirm(result.Dangerous, "") {
			log.Warnf("Adding %s was cancelled: %d entries point at public addresses", url, len(result.Dangerous))
			outcome.Status = StatusRefused
			return r.finish(opAdd, outcome), nil
		}
	}

	r.doc.Append(document.NewSource(url, content))
	r.dirty = true
	log.Infof("Added source %s", url)

	outcome.Status = StatusAdded
	return r.finish(opAdd, outcome), nil
}

// AddURL downloads url and adds it as a new source.
// The URL and duplicate checks happen before anything is downloaded.
func (r *Registry) AddURL(ctx context.Context, url string) (Outcome, error) {
	if err := r.checkNewURL(url); err != nil {
		return r.finish(opAdd, Outcome{URL: url, Status: StatusRejected, Err: err}), err
	}

	content, err := r.fetch(ctx, url)
	if err != nil {
		return r.finish(opAdd, Outcome{URL: url, Status: StatusFetchFailed, Err: err}), err
	}

	return r.addContent(url, content)
}

// Update replaces the content of an existing source.
// The returned error is set only when url does not name a source; every other
// failure is reported through the outcome and leaves the old content in place.
func (r *Registry) Update(url, content string) (Outcome, error) {
	idx := r.doc.IndexExact(url)
	if idx < 0 {
		err := errors.NewUnknownSourceError(url)
		return r.finish(opUpdate, Outcome{URL: url, Status: StatusRejected, Err: err}), err
	}
	return r.updateAt(idx, content), nil
}

func (r *Registry) updateAt(idx int, content string) Outcome {
	src := r.doc.Sources[idx]
	outcome := Outcome{URL: src.URL, Checksum: hashing.ContentChecksum(content)}

	if document.Normalize(src.Content) == document.Normalize(content) {
		log.Infof("Source %s is up to date", src.URL)
		outcome.Status = StatusUnchanged
		return r.finish(opUpdate, outcome)
	}

	result, err := checkContent(content)
	if err != nil {
		log.Errorf("New content of %s was rejected: %v", src.URL, err)
		outcome.Status = StatusInvalid
		outcome.Err = err
		return r.finish(opUpdate, outcome)
	}

	if result.NeedsConfirmation() {
		outcome.Dangerous = result.Dangerous
		if !r.confirm(result.Dangerous, src.URL) {
			log.Warnf("Update of %s was cancelled: %d entries point at public addresses", src.URL, len(result.Dangerous))
			outcome.Status = StatusRefused
			return r.finish(opUpdate, outcome)
		}
	}

	r.doc.Sources[idx].Content = content
	r.dirty = true
	log.Infof("Updated source %s", src.URL)

	outcome.Status = StatusUpdated
	return r.finish(opUpdate, outcome)
}

// UpdateOne downloads url and updates the matching source.
// An empty url is reported as NO_SELECTION, an unknown one as UNKNOWN_SOURCE,
// both before any download.
func (r *Registry) UpdateOne(ctx context.Context, url string) (Outcome, error) {
	if url == "" {
		err := errors.NewNoSelectionError()
		return r.finish(opUpdate, Outcome{Status: StatusRejected, Err: err}), err
	}

	idx := r.doc.IndexExact(url)
	if idx < 0 {
		err := errors.NewUnknownSourceError(url)
		return r.finish(opUpdate, Outcome{URL: url, Status: StatusRejected, Err: err}), err
	}

	content, err := r.fetch(ctx, url)
	if err != nil {
		log.Errorf("Failed to download %s: %v", url, err)
		return r.finish(opUpdate, Outcome{URL: url, Status: StatusFetchFailed, Err: err}), nil
	}

	return r.updateAt(idx, content), nil
}

// UpdateAll updates every source in order. A failing source never prevents the
// remaining ones from being updated.
func (r *Registry) UpdateAll(ctx context.Context) []Outcome {
	urls := slices.Collect(r.URLs())
	outcomes := make([]Outcome, 0, len(urls))

	for _, url := range urls {
		outcome, err := r.UpdateOne(ctx, url)
		if err != nil {
			log.Errorf("Failed to update %s: %v", url, err)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// Remove deletes the source matching url.
func (r *Registry) Remove(url string) (Outcome, error) {
	if url == "" {
		err := errors.NewNoSelectionError()
		return r.finish(opRemove, Outcome{Status: StatusRejected, Err: err}), err
	}

	idx := r.find(url)
	if idx < 0 {
		err := errors.NewUnknownSourceError(url)
		return r.finish(opRemove, Outcome{URL: url, Status: StatusRejected, Err: err}), err
	}

	removed := r.doc.RemoveAt(idx)
	r.dirty = true
	log.Infof("Removed source %s", removed.URL)

	return r.finish(opRemove, Outcome{URL: removed.URL, Status: StatusRemoved}), nil
}

// Save serializes the document and hands it to p. The dirty flag is cleared
// only when p succeeds.
func (r *Registry) Save(p Persister) error {
	if err := p.Persist(r.doc.Bytes()); err != nil {
		return err
	}
	r.dirty = false
	metrics.MarkSaved(time.Now())
	return nil
}

func (r *Registry) checkNewURL(url string) error {
	if err := ValidateURL(url); err != nil {
		return err
	}
	if r.find(url) >= 0 {
		return errors.NewDuplicateSourceError(url)
	}
	return nil
}

func (r *Registry) fetch(ctx context.Context, url string) (string, error) {
	if r.fetcher == nil {
		return "", errors.NewInternalError("no fetcher configured", nil)
	}
	return r.fetcher.Fetch(ctx, url, r.timeout)
}

func (r *Registry) confirm(entries []string, contextURL string) bool {
	metrics.AddDangerous(len(entries))
	if r.confirmer == nil {
		return false
	}
	return r.confirmer.ConfirmDangerous(entries, contextURL) == Accept
}

func (r *Registry) finish(operation string, outcome Outcome) Outcome {
	metrics.ObserveOperation(operation, string(outcome.Status))
	metrics.SetSources(len(r.doc.Sources))
	return outcome
}

// ValidateURL checks that url is an absolute http or https URL that a marker line can carry.
func ValidateURL(url string) error {
	if err := validate.Var(url, "required,url"); err != nil {
		return errors.NewValidationError("invalid URL: "+url, err)
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return errors.NewValidationError("invalid URL: only http:// and https:// sources are supported", nil)
	}
	if strings.ContainsFunc(url, unicode.IsSpace) {
		return errors.NewValidationError("invalid URL: must not contain whitespace", nil)
	}
	parsed, err := neturl.Parse(url)
	if err != nil || parsed.Host == "" {
		return errors.NewValidationError("invalid URL: missing host", err)
	}
	return nil
}

func checkContent(content string) (hosts.Result, error) {
	if document.ContainsReservedText(content) {
		return hosts.Result{}, errors.NewValidationError("content contains lost separator or marker lines", nil)
	}

	result := hosts.Validate(content)
	if !result.Valid {
		return result, errors.NewValidationError(invalidContentMessage(result), nil)
	}
	return result, nil
}

func invalidContentMessage(result hosts.Result) string {
	if result.Line > 0 {
		return fmt.Sprintf("content is not a valid hosts file: line %d: %s", result.Line, result.Reason)
	}
	return "content is not a valid hosts file"
}
