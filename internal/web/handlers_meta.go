package web

import (
	"context"
	"net/http"
	"time"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/form"
)

// healthTimeout bounds the store ping.
const healthTimeout = 2 * time.Second

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status      string                   `json:"status"`
	Submissions int64                    `json:"submissions"`
	Exports     core.ExportLimiterStatus `json:"exports"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.service.Ping(ctx); err != nil {
		respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	count, err := s.service.CountSubmissions(ctx)
	if err != nil {
		respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Submissions: count,
		Exports:     s.service.ExportStatus(),
	})
}

// FieldOptions describes one field for API clients.
type FieldOptions struct {
	Name    string        `json:"name"`
	Label   string        `json:"label"`
	MinLen  int           `json:"min_length,omitempty"`
	MaxLen  int           `json:"max_length,omitempty"`
	Options []core.Option `json:"options,omitempty"`
}

// OptionsResponse is the body of GET /api/options.
type OptionsResponse struct {
	Fields []FieldOptions `json:"fields"`
	Layout form.Layout    `json:"layout"`
}

// handleOptions serves the field catalog and step layout so clients do not
// hard-code allowed values.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	fields := make([]FieldOptions, len(core.FieldSpecs))
	for i, spec := range core.FieldSpecs {
		fields[i] = FieldOptions{
			Name:    spec.Wire,
			Label:   spec.Label,
			MinLen:  spec.MinLen,
			MaxLen:  spec.MaxLen,
			Options: spec.Options,
		}
	}
	writeJSON(w, http.StatusOK, OptionsResponse{Fields: fields, Layout: form.DefaultLayout()})
}
