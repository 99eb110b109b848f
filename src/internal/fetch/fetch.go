package fetch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/lost-hosts/lost/src/internal/errors"
	"github.com/lost-hosts/lost/src/internal/hashing"
	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/lost-hosts/lost/src/internal/utils"
)

const DefaultUserAgent = "lost"

// HTTPFetcher downloads source bodies over HTTP(S).
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher. A nil client uses a fresh http.Client.
func NewHTTPFetcher(client *http.Client, userAgent string) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPFetcher{client: client, userAgent: userAgent}
}

// Fetch downloads url and returns its body as text.
// Timeouts are reported as FETCH_TIMEOUT, everything else as FETCH_CONNECTION.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.NewFetchConnectionError(url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	log.Infof("Downloading %s", url)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classify(url, err)
	}
	defer utils.CloseOrWarn(resp.Body, "response body of "+url)

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewFetchConnectionError(url, fmt.Errorf("unexpected status: %s", resp.Status))
	}

	bodyProxy := hashing.NewMD5ReaderProxy(resp.Body)
	content, err := io.ReadAll(bodyProxy)
	if err != nil {
		return "", classify(url, err)
	}

	if checksum, err := bodyProxy.GetChecksum(); err != nil {
		log.Warnf("Failed to calculate checksum of %s: %v", url, err)
	} else {
		log.Debugf("Downloaded %s: %d bytes, md5 %s", url, bodyProxy.Size(), checksum)
	}

	return string(content), nil
}

func classify(url string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewFetchTimeoutError(url, err)
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.NewFetchTimeoutError(url, err)
	}
	return errors.NewFetchConnectionError(url, err)
}
