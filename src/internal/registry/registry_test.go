package registry

import (
	"context"
	stderrors "errors"
	"slices"
	"testing"
	"time"

	"github.com/lost-hosts/lost/src/internal/document"
	"github.com/lost-hosts/lost/src/internal/errors"
	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	urlA = "https://lists.example.com/a.txt"
	urlB = "https://lists.example.com/b.txt"
	urlC = "http://mirror.example.org/c"

	benign    = "0.0.0.0 ads.example\n0.0.0.0 tracker.example\n"
	dangerous = "0.0.0.0 ads.example\n8.8.8.8 example.com # redirect\n"
)

func init() {
	log.DisableLogs()
}

// staticFetcher serves fixed bodies per URL and records every request.
type staticFetcher struct {
	bodies   map[string]string
	failures map[string]error
	calls    []string
}

func (f *staticFetcher) Fetch(_ context.Context, url string, _ time.Duration) (string, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.failures[url]; ok {
		return "", err
	}
	return f.bodies[url], nil
}

type recordingConfirmer struct {
	decision Decision
	asked    [][]string
	urls     []string
}

func (c *recordingConfirmer) ConfirmDangerous(entries []string, contextURL string) Decision {
	c.asked = append(c.asked, entries)
	c.urls = append(c.urls, contextURL)
	return c.decision
}

func newRegistry(t *testing.T, raw string, opts Options) *Registry {
	t.Helper()
	doc, err := document.Parse(raw)
	require.NoError(t, err)
	return New(doc, opts)
}

func TestAdd_ThenRemove_RestoresDocument(t *testing.T) {
	raw := "127.0.0.1 localhost\n" + document.Separator + document.Marker(urlA) + "\n" + benign
	reg := newRegistry(t, raw, Options{})
	before := reg.Document().Serialize()

	outcome, err := reg.Add(urlB, "0.0.0.0 other.example")
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, outcome.Status)
	assert.True(t, reg.Dirty())
	assert.Equal(t, []string{urlA, urlB}, slices.Collect(reg.URLs()))

	outcome, err = reg.Remove(urlB)
	require.NoError(t, err)
	assert.Equal(t, StatusRemoved, outcome.Status)
	assert.Equal(t, before, reg.Document().Serialize())
}

func TestAdd_InvalidURL(t *testing.T) {
	reg := New(nil, Options{})

	for _, url := range []string{"", "not a url", "ftp://example.com/hosts", "https://", "https://exa mple.com"} {
		outcome, err := reg.Add(url, benign)
		require.Error(t, err, url)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation), url)
		assert.Equal(t, StatusRejected, outcome.Status)
	}
	assert.Equal(t, 0, reg.Len())
	assert.False(t, reg.Dirty())
}

func TestAdd_InvalidContent(t *testing.T) {
	reg := New(nil, Options{})

	outcome, err := reg.Add(urlA, "0.0.0.0 ok.example\ngoogle.com 0.0.0.0\n")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	assert.Equal(t, StatusInvalid, outcome.Status)
	assert.Equal(t, 0, reg.Len())
	assert.False(t, reg.Dirty())
}

func TestAdd_ReservedTextRejected(t *testing.T) {
	reg := New(nil, Options{})

	_, err := reg.Add(urlA, "0.0.0.0 a.example\n"+document.Marker(urlB)+"\n0.0.0.0 b.example")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	assert.Equal(t, 0, reg.Len())
}

func TestAdd_Duplicate(t *testing.T) {
	raw := document.Separator + document.Marker("http://example.com/hosts.txt") + "\n" + benign

	t.Run("exact", func(t *testing.T) {
		reg := newRegistry(t, raw, Options{Match: MatchExact})

		_, err := reg.Add("http://example.com/hosts.txt", benign)
		assert.True(t, errors.HasCode(err, errors.ErrCodeDuplicateSource))

		outcome, err := reg.Add("http://example.com/hosts", benign)
		require.NoError(t, err)
		assert.Equal(t, StatusAdded, outcome.Status)
	})

	t.Run("substring", func(t *testing.T) {
		reg := newRegistry(t, raw, Options{Match: MatchSubstring})

		_, err := reg.Add("http://example.com/hosts", benign)
		assert.True(t, errors.HasCode(err, errors.ErrCodeDuplicateSource))
		assert.Equal(t, 1, reg.Len())
	})
}

func TestAdd_Dangerous(t *testing.T) {
	t.Run("refused leaves state identical", func(t *testing.T) {
		confirmer := &recordingConfirmer{decision: Abort}
		reg := New(nil, Options{Confirmer: confirmer})
		before := reg.Document().Serialize()

		outcome, err := reg.Add(urlA, dangerous)
		require.NoError(t, err)
		assert.Equal(t, StatusRefused, outcome.Status)
		assert.Equal(t, []string{"8.8.8.8 example.com"}, outcome.Dangerous)
		assert.Equal(t, [][]string{{"8.8.8.8 example.com"}}, confirmer.asked)
		assert.Equal(t, []string{""}, confirmer.urls)
		assert.Equal(t, before, reg.Document().Serialize())
		assert.False(t, reg.Dirty())
	})

	t.Run("accepted", func(t *testing.T) {
		confirmer := &recordingConfirmer{decision: Accept}
		reg := New(nil, Options{Confirmer: confirmer})

		outcome, err := reg.Add(urlA, dangerous)
		require.NoError(t, err)
		assert.Equal(t, StatusAdded, outcome.Status)
		assert.Equal(t, dangerous, reg.Document().Sources[0].Content)
	})

	t.Run("ipv4-mapped public address asks", func(t *testing.T) {
		confirmer := &recordingConfirmer{decision: Abort}
		reg := New(nil, Options{Confirmer: confirmer})

		outcome, err := reg.Add(urlA, "::ffff:8.8.8.8 bank.example.com\n")
		require.NoError(t, err)
		assert.Equal(t, StatusRefused, outcome.Status)
		assert.Equal(t, [][]string{{"::ffff:8.8.8.8 bank.example.com"}}, confirmer.asked)
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("no confirmer refuses", func(t *testing.T) {
		reg := New(nil, Options{})

		outcome, err := reg.Add(urlA, dangerous)
		require.NoError(t, err)
		assert.Equal(t, StatusRefused, outcome.Status)
		assert.Equal(t, 0, reg.Len())
	})
}

func TestUpdate_WhitespaceOnlyChangeIsNoop(t *testing.T) {
	raw := document.Separator + document.Marker(urlA) + "\n0.0.0.0 a.example\n0.0.0.0 b.example\n"
	reg := newRegistry(t, raw, Options{})

	outcome, err := reg.Update(urlA, "\r\n0.0.0.0 a.example\r\n0.0.0.0 b.example\r\n\r\n")
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, outcome.Status)
	assert.False(t, reg.Dirty())
	assert.Equal(t, raw, reg.Document().Serialize())
}

func TestUpdate_Unknown(t *testing.T) {
	raw := document.Separator + document.Marker(urlA) + "\n" + benign
	reg := newRegistry(t, raw, Options{Match: MatchSubstring})

	// update never falls back to substring matching
	_, err := reg.Update("https://lists.example.com/a", benign)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnknownSource))
	assert.False(t, reg.Dirty())
}

func TestUpdate_InvalidKeepsOldContent(t *testing.T) {
	raw := document.Separator + document.Marker(urlA) + "\n" + benign
	reg := newRegistry(t, raw, Options{})

	outcome, err := reg.Update(urlA, "256.255.255.255 broken.example")
	require.NoError(t, err)
	assert.Equal(t, StatusInvalid, outcome.Status)
	assert.True(t, errors.HasCode(outcome.Err, errors.ErrCodeValidation))
	assert.Equal(t, raw, reg.Document().Serialize())
	assert.False(t, reg.Dirty())
}

func TestUpdate_DangerousAsksWithURL(t *testing.T) {
	raw := document.Separator + document.Marker(urlA) + "\n" + benign
	confirmer := &recordingConfirmer{decision: Abort}
	reg := newRegistry(t, raw, Options{Confirmer: confirmer})

	outcome, err := reg.Update(urlA, dangerous)
	require.NoError(t, err)
	assert.Equal(t, StatusRefused, outcome.Status)
	assert.Equal(t, []string{urlA}, confirmer.urls)
	assert.Equal(t, raw, reg.Document().Serialize())

	reg.SetConfirmer(ConfirmerFunc(func([]string, string) Decision { return Accept }))
	outcome, err = reg.Update(urlA, dangerous)
	require.NoError(t, err)
	assert.Equal(t, StatusUpdated, outcome.Status)
	assert.Equal(t, dangerous, reg.Document().Sources[0].Content)
}

func TestAddURL(t *testing.T) {
	fetcher := &staticFetcher{
		bodies:   map[string]string{urlA: benign},
		failures: map[string]error{urlB: errors.NewFetchTimeoutError(urlB, context.DeadlineExceeded)},
	}
	reg := New(nil, Options{Fetcher: fetcher})

	outcome, err := reg.AddURL(context.Background(), urlA)
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, outcome.Status)
	assert.NotEmpty(t, outcome.Checksum)

	_, err = reg.AddURL(context.Background(), urlA)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDuplicateSource))

	outcome, err = reg.AddURL(context.Background(), urlB)
	assert.True(t, errors.HasCode(err, errors.ErrCodeFetchTimeout))
	assert.Equal(t, StatusFetchFailed, outcome.Status)

	// The duplicate was rejected without a download.
	assert.Equal(t, []string{urlA, urlB}, fetcher.calls)
	assert.Equal(t, 1, reg.Len())
}

func TestUpdateOne_Preconditions(t *testing.T) {
	fetcher := &staticFetcher{}
	reg := New(nil, Options{Fetcher: fetcher})

	_, err := reg.UpdateOne(context.Background(), "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNoSelection))

	_, err = reg.UpdateOne(context.Background(), urlA)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnknownSource))

	assert.Empty(t, fetcher.calls)
}

func TestUpdateAll_FailureInTheMiddle(t *testing.T) {
	raw := "127.0.0.1 localhost" + document.Separator +
		document.Marker(urlA) + "\n0.0.0.0 old-a.example\n" +
		document.Marker(urlB) + "\n0.0.0.0 old-b.example\n" +
		document.Marker(urlC) + "\n0.0.0.0 old-c.example\n"

	fetcher := &staticFetcher{
		bodies: map[string]string{
			urlA: "0.0.0.0 new-a.example\n",
			urlB: "this is not a hosts file\n",
			urlC: "0.0.0.0 new-c.example\n",
		},
	}
	reg := newRegistry(t, raw, Options{Fetcher: fetcher})

	outcomes := reg.UpdateAll(context.Background())
	require.Len(t, outcomes, 3)
	assert.Equal(t, StatusUpdated, outcomes[0].Status)
	assert.Equal(t, StatusInvalid, outcomes[1].Status)
	assert.Equal(t, urlB, outcomes[1].URL)
	assert.Equal(t, StatusUpdated, outcomes[2].Status)

	sources := reg.Document().Sources
	assert.Equal(t, "0.0.0.0 new-a.example\n", sources[0].Content)
	assert.Equal(t, "0.0.0.0 old-b.example", sources[1].Content)
	assert.Equal(t, "0.0.0.0 new-c.example\n", sources[2].Content)
	assert.True(t, reg.Dirty())
}

func TestUpdateAll_FetchFailureIsIsolated(t *testing.T) {
	raw := document.Separator +
		document.Marker(urlA) + "\n0.0.0.0 old-a.example\n" +
		document.Marker(urlB) + "\n0.0.0.0 old-b.example\n"

	fetcher := &staticFetcher{
		bodies:   map[string]string{urlB: "0.0.0.0 new-b.example"},
		failures: map[string]error{urlA: errors.NewFetchConnectionError(urlA, stderrors.New("connection refused"))},
	}
	reg := newRegistry(t, raw, Options{Fetcher: fetcher})

	outcomes := reg.UpdateAll(context.Background())
	require.Len(t, outcomes, 2)
	assert.Equal(t, StatusFetchFailed, outcomes[0].Status)
	assert.True(t, errors.HasCode(outcomes[0].Err, errors.ErrCodeFetchConnection))
	assert.Equal(t, StatusUpdated, outcomes[1].Status)
}

func TestUpdateAll_Empty(t *testing.T) {
	reg := newRegistry(t, "127.0.0.1 localhost"+document.Separator+"\n\n", Options{Fetcher: &staticFetcher{}})

	assert.Empty(t, slices.Collect(reg.URLs()))
	assert.Empty(t, reg.UpdateAll(context.Background()))
	assert.False(t, reg.Dirty())
}

func TestRemove(t *testing.T) {
	raw := document.Separator +
		document.Marker("http://example.com.evil.com/hosts") + "\n" + benign +
		document.Marker("http://example.com/hosts") + "\n" + benign

	t.Run("exact", func(t *testing.T) {
		reg := newRegistry(t, raw, Options{})

		_, err := reg.Remove("http://example.com")
		assert.True(t, errors.HasCode(err, errors.ErrCodeUnknownSource))

		outcome, err := reg.Remove("http://example.com/hosts")
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/hosts", outcome.URL)
		assert.Equal(t, []string{"http://example.com.evil.com/hosts"}, slices.Collect(reg.URLs()))
	})

	t.Run("substring removes the first match", func(t *testing.T) {
		reg := newRegistry(t, raw, Options{Match: MatchSubstring})

		outcome, err := reg.Remove("http://example.com")
		require.NoError(t, err)
		assert.Equal(t, "http://example.com.evil.com/hosts", outcome.URL)
	})

	t.Run("no selection", func(t *testing.T) {
		reg := newRegistry(t, raw, Options{})

		_, err := reg.Remove("")
		assert.True(t, errors.HasCode(err, errors.ErrCodeNoSelection))
		assert.Equal(t, 2, reg.Len())
	})
}

func TestURLs_Restartable(t *testing.T) {
	raw := document.Separator + document.Marker(urlA) + "\n" + benign + document.Marker(urlB) + "\n" + benign
	reg := newRegistry(t, raw, Options{})

	first := slices.Collect(reg.URLs())
	second := slices.Collect(reg.URLs())
	assert.Equal(t, []string{urlA, urlB}, first)
	assert.Equal(t, first, second)

	for url := range reg.URLs() {
		assert.Equal(t, urlA, url)
		break
	}
}

func TestSave(t *testing.T) {
	reg := New(nil, Options{})
	_, err := reg.Add(urlA, benign)
	require.NoError(t, err)

	failing := PersisterFunc(func([]byte) error { return stderrors.New("disk full") })
	require.Error(t, reg.Save(failing))
	assert.True(t, reg.Dirty())

	var saved []byte
	require.NoError(t, reg.Save(PersisterFunc(func(data []byte) error {
		saved = data
		return nil
	})))
	assert.False(t, reg.Dirty())
	assert.Equal(t, reg.Document().Serialize(), string(saved))

	parsed, err := document.Parse(string(saved))
	require.NoError(t, err)
	assert.Equal(t, reg.Document().Sources, parsed.Sources)
}
