package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/form"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/logging"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/web/templates"
	"github.com/a-h/templ"
)

// Form actions posted by the buttons on the page.
const (
	actionNext    = "next"
	actionBack    = "back"
	actionAnother = "another"
	actionGoto    = "goto-"
)

// submitter delivers HTML form submissions straight to the service.
func (s *Server) submitter() form.Submitter {
	return form.SubmitterFunc(s.service.Submit)
}

// handleFormPage renders an empty form on the first step.
func (s *Server) handleFormPage(w http.ResponseWriter, r *http.Request) {
	c := form.NewController(s.submitter())
	render(w, r, http.StatusOK, templates.FormPage(templates.FormView{Controller: c}))
}

// handleFormPost applies one navigation or submit action. All form state
// travels in the request: the step index, every value, and the idempotency
// key with the fingerprint of the values it was issued for.
func (s *Server) handleFormPost(w http.ResponseWriter, r *http.Request) {
	r = withRequestMetadata(r)
	if err := r.ParseForm(); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", core.ErrMalformedRequest, err), http.StatusBadRequest)
		return
	}

	var values core.NewSubmission
	for _, spec := range core.FieldSpecs {
		values.Set(spec.Field, r.PostForm.Get(spec.Wire))
	}
	step, _ := strconv.Atoi(r.PostForm.Get("step"))
	key := r.PostForm.Get("key")
	if key != "" && r.PostForm.Get("key_for") != core.Fingerprint(values) {
		key = ""
	}
	c := form.Restore(s.submitter(), step, values, key)

	status := http.StatusOK
	var notice *core.UserMessage

	action := r.PostForm.Get("action")
	switch {
	case action == actionBack:
		c.Retreat()
	case strings.HasPrefix(action, actionGoto):
		if n, err := strconv.Atoi(strings.TrimPrefix(action, actionGoto)); err == nil {
			c.JumpTo(n)
		}
	case action == actionAnother:
		// Values stay filled in; the missing key starts a new submission.
	default:
		err := c.Advance(r.Context())
		switch {
		case err == nil:
		case c.Phase() == form.PhaseFailed:
			msg := core.MapError(err)
			notice = &msg
			status = statusFor(err)
			logging.FromContext(r.Context()).Warn("form submission failed",
				"error", err, "code", msg.Code)
		default:
			status = http.StatusUnprocessableEntity
		}
	}

	if c.Phase() == form.PhaseSubmitted {
		render(w, r, http.StatusOK, templates.ThankYouPage(c))
		return
	}

	view := templates.FormView{Controller: c, Notice: notice}
	if c.IdempotencyKey() != "" {
		view.KeyFor = core.Fingerprint(c.Values())
	}
	render(w, r, status, templates.FormPage(view))
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}
