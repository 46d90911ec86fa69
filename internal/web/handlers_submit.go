package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
)

// maxSubmitBody bounds the JSON body of a submission.
const maxSubmitBody = 64 << 10

// idempotencyHeader carries an optional client key that makes retries safe.
const idempotencyHeader = "Idempotency-Key"

// SubmitResponse is the success body of POST /api/submit.
type SubmitResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// handleSubmit accepts one submission as JSON.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r = withRequestMetadata(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBody)

	var sub core.NewSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", core.ErrMalformedRequest, err), http.StatusBadRequest)
		return
	}
	sub.IdempotencyKey = r.Header.Get(idempotencyHeader)

	id, err := s.service.Submit(r.Context(), sub)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, SubmitResponse{Message: "Submission successful", ID: id})
}
