// Package form drives the multi-step feedback form.
//
// A Controller owns the step index, the values entered so far and the
// submission phase. It validates only the current step on Advance, checks
// all fields before submitting, and keeps the values intact when a
// submission fails so the user can retry. Front ends (the terminal form and
// the HTML form) render a Controller; they never hold form state themselves.
//
// A Controller is not safe for concurrent use.
package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
	"github.com/google/uuid"
)

// Phase is the submission lifecycle state.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseSubmitted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSubmitted:
		return "submitted"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

var (
	// ErrBusy is returned for navigation or edits while a submission is in flight.
	ErrBusy = errors.New("form: submission in progress")
	// ErrSubmitted is returned for edits after a successful submission.
	ErrSubmitted = errors.New("form: already submitted")
	// ErrNoSuchStep is returned by JumpTo for an out-of-range step.
	ErrNoSuchStep = errors.New("form: no such step")
)

// Submitter delivers a completed submission and returns its stored id.
type Submitter interface {
	Submit(ctx context.Context, sub core.NewSubmission) (int64, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, sub core.NewSubmission) (int64, error)

func (f SubmitterFunc) Submit(ctx context.Context, sub core.NewSubmission) (int64, error) {
	return f(ctx, sub)
}

// Controller is the form state machine.
type Controller struct {
	layout    Layout
	submitter Submitter
	newKey    func() string

	step   int
	values core.NewSubmission
	phase  Phase
	errs   map[core.Field]string

	// key identifies one logical submission across retries.
	key         string
	submittedID int64
	lastErr     error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLayout replaces the default step layout.
func WithLayout(l Layout) Option {
	return func(c *Controller) { c.layout = l }
}

// WithKeyFunc replaces the idempotency key generator.
func WithKeyFunc(fn func() string) Option {
	return func(c *Controller) { c.newKey = fn }
}

// NewController returns a controller on the first step with empty values.
func NewController(s Submitter, opts ...Option) *Controller {
	c := &Controller{
		layout:    DefaultLayout(),
		submitter: s,
		newKey:    uuid.NewString,
		errs:      make(map[core.Field]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore rebuilds a controller from state carried outside the process,
// such as hidden fields in an HTML form. Out-of-range steps are clamped.
func Restore(s Submitter, step int, values core.NewSubmission, key string, opts ...Option) *Controller {
	c := NewController(s, opts...)
	c.step = max(0, min(step, len(c.layout.Steps)-1))
	c.values = values
	c.key = key
	return c
}

// Layout returns the step layout.
func (c *Controller) Layout() Layout { return c.layout }

// Step returns the current step index.
func (c *Controller) Step() int { return c.step }

// CurrentStep returns the layout of the current step.
func (c *Controller) CurrentStep() StepLayout { return c.layout.Steps[c.step] }

// TotalSteps returns the number of steps.
func (c *Controller) TotalSteps() int { return len(c.layout.Steps) }

// IsLastStep reports whether Advance will submit.
func (c *Controller) IsLastStep() bool { return c.step == len(c.layout.Steps)-1 }

// Phase returns the submission phase.
func (c *Controller) Phase() Phase { return c.phase }

// Values returns the values entered so far.
func (c *Controller) Values() core.NewSubmission { return c.values }

// Value returns one entered value.
func (c *Controller) Value(f core.Field) string { return c.values.Get(f) }

// Errors returns the field messages from the last failed validation.
func (c *Controller) Errors() map[core.Field]string { return c.errs }

// FieldError returns the message for one field, or "".
func (c *Controller) FieldError(f core.Field) string { return c.errs[f] }

// SubmittedID returns the stored id after a successful submission.
func (c *Controller) SubmittedID() int64 { return c.submittedID }

// LastError returns the error of the last failed submission.
func (c *Controller) LastError() error { return c.lastErr }

// IdempotencyKey returns the key of the pending logical submission, or ""
// if none has been attempted yet.
func (c *Controller) IdempotencyKey() string { return c.key }

// Progress returns the completion percentage shown above the form.
func (c *Controller) Progress() float64 {
	return float64(c.step+1) / float64(len(c.layout.Steps)) * 100
}

func (c *Controller) editable() error {
	switch c.phase {
	case PhaseSubmitting:
		return ErrBusy
	case PhaseSubmitted:
		return ErrSubmitted
	default:
		return nil
	}
}

// Set records a value. Editing after a failed submission returns the form
// to editing. A changed value starts a new logical submission.
func (c *Controller) Set(f core.Field, value string) error {
	if err := c.editable(); err != nil {
		return err
	}
	if c.values.Get(f) != value {
		c.key = ""
	}
	c.values.Set(f, value)
	delete(c.errs, f)
	if c.phase == PhaseFailed {
		c.phase = PhaseEditing
	}
	return nil
}

// Advance validates the current step. If it is valid and not the last step,
// the controller moves forward. On the last step every field is validated
// and, if all pass, the submission is delivered synchronously.
//
// The returned error is a *core.ValidationError when the step is invalid,
// ErrBusy or ErrSubmitted when navigation is not allowed, or the
// submitter's error.
func (c *Controller) Advance(ctx context.Context) error {
	submit, err := c.Next()
	if err != nil || !submit {
		return err
	}
	id, err := c.submitter.Submit(ctx, c.Payload())
	c.Complete(id, err)
	return err
}

// Next is the first half of Advance for callers that deliver the submission
// themselves. It returns true when the form moved to PhaseSubmitting; the
// caller must then send Payload and report the outcome through Complete.
func (c *Controller) Next() (bool, error) {
	if err := c.editable(); err != nil {
		return false, err
	}

	if verr := core.ValidateFields(c.values, c.CurrentStep().FieldKeys()...); verr != nil {
		c.errs = verr.Messages()
		return false, verr
	}
	c.errs = make(map[core.Field]string)

	if !c.IsLastStep() {
		c.step++
		c.phase = PhaseEditing
		return false, nil
	}

	if verr := core.ValidateSubmission(c.values); verr != nil {
		c.errs = verr.Messages()
		c.step = c.firstStepWithError()
		return false, verr
	}

	c.begin()
	return true, nil
}

func (c *Controller) firstStepWithError() int {
	for i, step := range c.layout.Steps {
		for _, f := range step.FieldKeys() {
			if _, bad := c.errs[f]; bad {
				return i
			}
		}
	}
	return c.step
}

func (c *Controller) begin() {
	if c.key == "" {
		c.key = c.newKey()
	}
	c.phase = PhaseSubmitting
	c.lastErr = nil
}

// Payload returns the submission to deliver, carrying the idempotency key.
func (c *Controller) Payload() core.NewSubmission {
	sub := c.values.Normalized()
	sub.IdempotencyKey = c.key
	return sub
}

// Complete records the outcome of a submission started by Next. A nil err
// moves to PhaseSubmitted and keeps the values for the summary; otherwise
// the form moves to PhaseFailed with values and key intact for a retry.
func (c *Controller) Complete(id int64, err error) {
	if c.phase != PhaseSubmitting {
		return
	}
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			c.errs = verr.Messages()
			c.step = c.firstStepWithError()
		}
		c.phase = PhaseFailed
		c.lastErr = err
		return
	}
	c.phase = PhaseSubmitted
	c.submittedID = id
}

// Submit validates every field and delivers the submission regardless of
// the current step. It is the retry path after PhaseFailed.
func (c *Controller) Submit(ctx context.Context) error {
	if err := c.editable(); err != nil {
		return err
	}
	if verr := core.ValidateSubmission(c.values); verr != nil {
		c.errs = verr.Messages()
		c.step = c.firstStepWithError()
		return verr
	}
	c.errs = make(map[core.Field]string)
	c.begin()
	id, err := c.submitter.Submit(ctx, c.Payload())
	c.Complete(id, err)
	return err
}

// Retreat moves back one step without validating.
func (c *Controller) Retreat() error {
	if c.phase == PhaseSubmitting {
		return ErrBusy
	}
	if c.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	if c.step > 0 {
		c.step--
	}
	c.phase = PhaseEditing
	return nil
}

// JumpTo selects a step directly, as a tab would, without validating.
func (c *Controller) JumpTo(step int) error {
	if err := c.editable(); err != nil {
		return err
	}
	if step < 0 || step >= len(c.layout.Steps) {
		return fmt.Errorf("%w: %d", ErrNoSuchStep, step)
	}
	c.step = step
	c.phase = PhaseEditing
	return nil
}

// Reset clears all values and returns to the first step.
func (c *Controller) Reset() {
	c.step = 0
	c.values = core.NewSubmission{}
	c.phase = PhaseEditing
	c.errs = make(map[core.Field]string)
	c.key = ""
	c.submittedID = 0
	c.lastErr = nil
}

// SubmitAnother leaves the confirmation and returns to editing with the
// previous values still filled in, as a new logical submission.
func (c *Controller) SubmitAnother() {
	if c.phase != PhaseSubmitted {
		return
	}
	c.phase = PhaseEditing
	c.key = ""
	c.submittedID = 0
}

// Summary is the confirmation shown after a successful submission.
type Summary struct {
	ID          int64
	StudentName string
	MessType    string
	MealType    string
}

// Summary returns the confirmation details. ok is false unless submitted.
func (c *Controller) Summary() (s Summary, ok bool) {
	if c.phase != PhaseSubmitted {
		return Summary{}, false
	}
	return Summary{
		ID:          c.submittedID,
		StudentName: c.values.StudentName,
		MessType:    c.values.MessType,
		MealType:    c.values.MealType,
	}, true
}
