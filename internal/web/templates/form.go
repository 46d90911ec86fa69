package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/form"
	"github.com/a-h/templ"
)

// FormView is everything the form page needs from a request.
type FormView struct {
	Controller *form.Controller
	// KeyFor is the fingerprint of the values the idempotency key belongs to.
	KeyFor string
	// Notice is shown above the form, e.g. after a failed submission.
	Notice *core.UserMessage
}

// errWriter records the first write error so templates can write freely.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func esc(s string) string { return templ.EscapeString(s) }

// FormPage renders the current step of the multi-step form.
func FormPage(v FormView) templ.Component {
	l := v.Controller.Layout()
	return Page(l.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		c := v.Controller
		ew := &errWriter{w: w}

		ew.printf(`<div style="text-align:center"><h1>%s</h1><p class="muted">%s</p></div>`,
			esc(l.Title), esc(l.Subtitle))
		ew.printf(`<div class="progress"><div style="width:%.0f%%"></div></div>`, c.Progress())
		ew.printf(`<div class="steps muted"><span>Step %d of %d</span><span>%.0f%% Complete</span></div>`,
			c.Step()+1, c.TotalSteps(), c.Progress())

		if v.Notice != nil {
			if ew.err == nil {
				ew.err = ErrorAlert(v.Notice.Message, v.Notice.Action, v.Notice.Code).Render(ctx, w)
			}
		}

		ew.printf(`<form class="card" method="post" action="/form">`)
		ew.printf(`<input type="hidden" name="step" value="%d">`, c.Step())
		ew.printf(`<input type="hidden" name="key" value="%s">`, esc(c.IdempotencyKey()))
		ew.printf(`<input type="hidden" name="key_for" value="%s">`, esc(v.KeyFor))

		ew.printf(`<div class="tabs">`)
		for i, step := range l.Steps {
			class := ""
			if i == c.Step() {
				class = ` class="active"`
			}
			ew.printf(`<button type="submit" name="action" value="goto-%d"%s>%s</button>`, i, class, esc(step.Tab))
		}
		ew.printf(`</div>`)

		current := c.CurrentStep()
		ew.printf(`<h2>%s</h2><p class="muted">%s</p>`, esc(current.Heading), esc(current.Description))
		for _, fl := range current.Fields {
			renderField(ew, fl, c.Value(fl.Field), c.FieldError(fl.Field))
		}

		// Values of the other steps travel as hidden inputs.
		for i, step := range l.Steps {
			if i == c.Step() {
				continue
			}
			for _, fl := range step.Fields {
				ew.printf(`<input type="hidden" name="%s" value="%s">`, esc(fl.Spec().Wire), esc(c.Value(fl.Field)))
			}
		}

		ew.printf(`<div class="actions">`)
		if c.Step() > 0 {
			ew.printf(`<button class="btn" type="submit" name="action" value="back">Previous</button>`)
		} else {
			ew.printf(`<span></span>`)
		}
		next := "Next"
		if c.IsLastStep() {
			next = "Submit Feedback"
		}
		ew.printf(`<button class="btn primary" type="submit" name="action" value="next">%s</button>`, next)
		ew.printf(`</div></form>`)
		return ew.err
	}))
}

func renderField(ew *errWriter, fl form.FieldLayout, value, errMsg string) {
	spec := fl.Spec()
	name := esc(spec.Wire)
	ew.printf(`<div class="field"><label for="%s">%s</label>`, name, esc(spec.Label))

	switch {
	case spec.Type == core.FieldEnum && len(spec.Options) <= 4:
		for _, o := range spec.Options {
			checked := ""
			if o.Value == value {
				checked = " checked"
			}
			ew.printf(`<label style="font-weight:400;display:inline-block;margin-right:1rem">`+
				`<input type="radio" name="%s" value="%s"%s> %s</label>`,
				name, esc(o.Value), checked, esc(o.Label))
		}
	case spec.Type == core.FieldEnum:
		ew.printf(`<select id="%s" name="%s"><option value="">%s</option>`, name, name, esc(fl.Placeholder))
		for _, o := range spec.Options {
			selected := ""
			if o.Value == value {
				selected = " selected"
			}
			ew.printf(`<option value="%s"%s>%s</option>`, esc(o.Value), selected, esc(o.Label))
		}
		ew.printf(`</select>`)
	case spec.Type == core.FieldLongText:
		ew.printf(`<textarea id="%s" name="%s" rows="4" maxlength="%d" placeholder="%s">%s</textarea>`,
			name, name, spec.MaxLen, esc(fl.Placeholder), esc(value))
	default:
		ew.printf(`<input type="text" id="%s" name="%s" maxlength="%d" placeholder="%s" value="%s">`,
			name, name, spec.MaxLen, esc(fl.Placeholder), esc(value))
	}

	if fl.Hint != "" {
		ew.printf(`<div class="muted">%s</div>`, esc(fl.Hint))
	}
	if errMsg != "" {
		ew.printf(`<div class="error">%s</div>`, esc(errMsg))
	}
	ew.printf(`</div>`)
}

// ThankYouPage is the confirmation shown after a successful submission.
func ThankYouPage(c *form.Controller) templ.Component {
	return Page("Thank You", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s, _ := c.Summary()
		ew := &errWriter{w: w}

		ew.printf(`<div style="text-align:center"><h1>Thank You!</h1>`)
		ew.printf(`<p class="muted">Your feedback has been submitted successfully. ` +
			`We appreciate your contribution to improving our mess menu.</p></div>`)
		ew.printf(`<div class="card summary"><h3>Your Submission Summary</h3>`)
		ew.printf(`<div><span class="muted">Reference:</span><span>#%s</span></div>`, strconv.FormatInt(s.ID, 10))
		ew.printf(`<div><span class="muted">Name:</span><span>%s</span></div>`, esc(s.StudentName))
		ew.printf(`<div><span class="muted">Mess Type:</span><span>%s</span></div>`, esc(s.MessType))
		ew.printf(`<div><span class="muted">Meal Type:</span><span>%s</span></div></div>`, esc(s.MealType))

		ew.printf(`<form method="post" action="/form" class="actions">`)
		ew.printf(`<input type="hidden" name="step" value="%d">`, c.Step())
		for _, spec := range core.FieldSpecs {
			ew.printf(`<input type="hidden" name="%s" value="%s">`, esc(spec.Wire), esc(c.Value(spec.Field)))
		}
		ew.printf(`<button class="btn" type="submit" name="action" value="another">Submit Another Response</button>`)
		ew.printf(`<a class="btn primary" href="/">Return Home</a></form>`)

		ew.printf(`<div class="actions"><a class="btn" href="/api/report/excel">Download Excel Report</a>`)
		ew.printf(`<a class="btn" href="/api/report/pdf">Download PDF Report</a></div>`)
		return ew.err
	}))
}
