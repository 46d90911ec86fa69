package web

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/export"
)

// handleReport renders the full submission set in the given format and
// sends it as an attachment. The document is complete before the first
// byte is written, so a failure always produces a JSON error instead.
func (s *Server) handleReport(f export.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.service.Export(r.Context(), f.Render)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusServiceUnavailable {
				w.Header().Set("Retry-After", "5")
			}
			respondError(w, r, err, status)
			return
		}

		w.Header().Set("Content-Type", f.ContentType)
		w.Header().Set("Content-Disposition",
			mime.FormatMediaType("attachment", map[string]string{"filename": f.Filename}))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
