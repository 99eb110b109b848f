package api

import "github.com/lost-hosts/lost/src/internal/registry"

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// SourceInfo describes one source of the managed region.
type SourceInfo struct {
	URL      string `json:"url"`
	Lines    int    `json:"lines"`
	Checksum string `json:"checksum"`
}

// SourcesResponse lists the sources in document order.
type SourcesResponse struct {
	Sources []SourceInfo `json:"sources"`
}

// StatusResponse reports whether there are unsaved changes.
type StatusResponse struct {
	HostsFile string `json:"hosts_file"`
	Dirty     bool   `json:"dirty"`
	Sources   int    `json:"sources"`
}

// SourceRequest adds or updates a single source.
type SourceRequest struct {
	URL               string `json:"url"`
	ConfirmationToken string `json:"confirmation_token,omitempty"`
}

// UpdateAllRequest updates every source. Tokens are keyed by source URL.
type UpdateAllRequest struct {
	ConfirmationTokens map[string]string `json:"confirmation_tokens,omitempty"`
}

// OutcomeInfo is the JSON form of a registry outcome.
type OutcomeInfo struct {
	URL          string          `json:"url"`
	Status       registry.Status `json:"status"`
	Checksum     string          `json:"checksum,omitempty"`
	Dangerous    []string        `json:"dangerous,omitempty"`
	Error        string          `json:"error,omitempty"`
	Confirmation *Challenge      `json:"confirmation,omitempty"`
}

// UpdateAllResponse holds one outcome per source, in document order.
type UpdateAllResponse struct {
	Outcomes []OutcomeInfo `json:"outcomes"`
	Failed   int           `json:"failed"`
}

// SaveResponse reports a completed save.
type SaveResponse struct {
	Saved bool   `json:"saved"`
	Bytes int    `json:"bytes"`
	Path  string `json:"path"`
}

// ValidationResponse is the result of validating a hosts text.
type ValidationResponse struct {
	Valid     bool     `json:"valid"`
	Dangerous []string `json:"dangerous"`
	Line      int      `json:"line,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

func outcomeInfo(o registry.Outcome) OutcomeInfo {
	info := OutcomeInfo{
		URL:       o.URL,
		Status:    o.Status,
		Checksum:  o.Checksum,
		Dangerous: o.Dangerous,
	}
	if o.Err != nil {
		info.Error = o.Err.Error()
	}
	return info
}
