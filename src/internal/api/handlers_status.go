package api

import (
	"context"
	"net/http"

	"github.com/lost-hosts/lost/src/internal/hosts"
	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/lost-hosts/lost/src/internal/registry"
)

// maxValidateBody caps the request body accepted by Validate.
const maxValidateBody = 32 << 20

// GetStatus reports the number of sources and whether there are unsaved changes.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	var response StatusResponse
	h.withRegistry(r.Context(), nil, func(_ context.Context, reg *registry.Registry) {
		response = StatusResponse{
			HostsFile: h.hostsFile,
			Dirty:     reg.Dirty(),
			Sources:   reg.Len(),
		}
	})
	writeJSONData(w, response)
}

// Save writes the document to the hosts file.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var (
		size int
		err  error
	)
	h.withRegistry(r.Context(), nil, func(_ context.Context, reg *registry.Registry) {
		size = len(reg.Document().Serialize())
		err = reg.Save(h.persister)
	})
	if err != nil {
		log.Errorf("Failed to save %s: %v", h.hostsFile, err)
		WriteInternalError(w, err.Error())
		return
	}

	log.Infof("Saved %s", h.hostsFile)
	writeJSONData(w, SaveResponse{Saved: true, Bytes: size, Path: h.hostsFile})
}

// Validate checks a hosts text sent as the raw request body.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	result, err := hosts.ValidateReader(http.MaxBytesReader(w, r.Body, maxValidateBody))
	if err != nil {
		WriteInvalidRequest(w, "Failed to read request body: "+err.Error())
		return
	}

	writeJSONData(w, ValidationResponse{
		Valid:     result.Valid,
		Dangerous: result.Dangerous,
		Line:      result.Line,
		Reason:    result.Reason,
	})
}

// CheckHealth reports that the server is up.
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONData(w, map[string]string{"status": "ok"})
}
