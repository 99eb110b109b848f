package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/lost-hosts/lost/src/internal/hashing"
	"github.com/lost-hosts/lost/src/internal/registry"
)

// GetSources returns the sources in document order.
func (h *Handler) GetSources(w http.ResponseWriter, r *http.Request) {
	var response SourcesResponse
	h.withRegistry(r.Context(), nil, func(_ context.Context, reg *registry.Registry) {
		response.Sources = make([]SourceInfo, 0, reg.Len())
		for _, src := range reg.Document().Sources {
			response.Sources = append(response.Sources, SourceInfo{
				URL:      src.URL,
				Lines:    countLines(src.Content),
				Checksum: hashing.ContentChecksum(src.Content),
			})
		}
	})
	writeJSONData(w, response)
}

// CreateSource downloads and adds a new source.
func (h *Handler) CreateSource(w http.ResponseWriter, r *http.Request) {
	var req SourceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, "Invalid JSON: "+err.Error())
		return
	}

	rc := h.confirmations.forRequest(req.URL, map[string]string{req.URL: req.ConfirmationToken})

	var (
		outcome registry.Outcome
		err     error
	)
	h.withRegistry(r.Context(), rc, func(ctx context.Context, reg *registry.Registry) {
		outcome, err = reg.AddURL(ctx, req.URL)
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	if outcome.Status == registry.StatusRefused {
		writeChallenge(w, rc, outcome)
		return
	}
	writeCreated(w, outcomeInfo(outcome))
}

// UpdateSource downloads a source again and replaces its content.
func (h *Handler) UpdateSource(w http.ResponseWriter, r *http.Request) {
	var req SourceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, "Invalid JSON: "+err.Error())
		return
	}

	rc := h.confirmations.forRequest(req.URL, map[string]string{req.URL: req.ConfirmationToken})

	var (
		outcome registry.Outcome
		err     error
	)
	h.withRegistry(r.Context(), rc, func(ctx context.Context, reg *registry.Registry) {
		outcome, err = reg.UpdateOne(ctx, req.URL)
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	switch outcome.Status {
	case registry.StatusRefused:
		writeChallenge(w, rc, outcome)
	case registry.StatusInvalid, registry.StatusFetchFailed:
		WriteDomainError(w, outcome.Err)
	default:
		writeJSONData(w, outcomeInfo(outcome))
	}
}

// UpdateAllSources updates every source. Individual failures are reported per
// outcome and never fail the request.
func (h *Handler) UpdateAllSources(w http.ResponseWriter, r *http.Request) {
	var req UpdateAllRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			WriteInvalidRequest(w, "Invalid JSON: "+err.Error())
			return
		}
	}

	rc := h.confirmations.forRequest("", req.ConfirmationTokens)

	var outcomes []registry.Outcome
	h.withRegistry(r.Context(), rc, func(ctx context.Context, reg *registry.Registry) {
		outcomes = reg.UpdateAll(ctx)
	})

	response := UpdateAllResponse{Outcomes: make([]OutcomeInfo, 0, len(outcomes))}
	for _, outcome := range outcomes {
		info := outcomeInfo(outcome)
		if outcome.Status == registry.StatusRefused {
			if challenge, ok := rc.challenge(outcome.URL); ok {
				info.Confirmation = &challenge
			}
		}
		if outcome.Status.Failed() {
			response.Failed++
		}
		response.Outcomes = append(response.Outcomes, info)
	}
	writeJSONData(w, response)
}

// DeleteSource removes the source given by the "url" query parameter.
func (h *Handler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")

	var (
		outcome registry.Outcome
		err     error
	)
	h.withRegistry(r.Context(), nil, func(_ context.Context, reg *registry.Registry) {
		outcome, err = reg.Remove(url)
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSONData(w, outcomeInfo(outcome))
}

func writeChallenge(w http.ResponseWriter, rc *requestConfirmer, outcome registry.Outcome) {
	challenge, ok := rc.challenge(outcome.URL)
	if !ok {
		WriteInternalError(w, "confirmation was refused without a challenge")
		return
	}

	details := map[string]interface{}{
		"url":        challenge.URL,
		"token":      challenge.Token,
		"not_before": challenge.NotBefore,
		"entries":    challenge.Entries,
	}
	if challenge.TooEarly {
		WriteError(w, http.StatusTooEarly, NewAPIError(ErrCodeTooEarly,
			"the confirmation token cannot be used yet, review the entries and retry after not_before").WithDetails(details))
		return
	}
	WriteError(w, http.StatusConflict, NewAPIError(ErrCodeConfirmationRequired,
		"the source redirects hostnames to public addresses, resubmit with confirmation_token after not_before to accept").WithDetails(details))
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(content, "\n"), "\n") + 1
}
