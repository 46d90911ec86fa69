package form

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
)

type recordingSubmitter struct {
	calls []core.NewSubmission
	err   error
	id    int64
}

func (r *recordingSubmitter) Submit(_ context.Context, sub core.NewSubmission) (int64, error) {
	r.calls = append(r.calls, sub)
	if r.err != nil {
		return 0, r.err
	}
	r.id++
	return r.id, nil
}

func sequentialKeys() func() string {
	n := 0
	return func() string {
		n++
		return "key-" + strconv.Itoa(n)
	}
}

func newTestController(s Submitter) *Controller {
	return NewController(s, WithKeyFunc(sequentialKeys()))
}

func fill(t *testing.T, c *Controller, values map[core.Field]string) {
	t.Helper()
	for f, v := range values {
		if err := c.Set(f, v); err != nil {
			t.Fatalf("Set(%s): %v", f, err)
		}
	}
}

var (
	personal = map[core.Field]string{
		core.FieldRegistrationNumber: "abcde",
		core.FieldStudentName:        "Asha Rao",
		core.FieldBlockAndRoom:       "A-204",
	}
	mess = map[core.Field]string{
		core.FieldDiningMessName: core.MessCentral,
		core.FieldMessType:       core.MessTypeVeg,
		core.FieldMealType:       core.MealBreakfast,
	}
	suggestion = map[core.Field]string{
		core.FieldFoodItemSuggestion: "Masala dosa on Fridays",
		core.FieldFeasibility:        core.FeasibleYes,
	}
)

func fillAll(t *testing.T, c *Controller) {
	t.Helper()
	fill(t, c, personal)
	fill(t, c, mess)
	fill(t, c, suggestion)
}

func TestAdvance_RejectsShortRegistrationNumber(t *testing.T) {
	c := newTestController(&recordingSubmitter{})
	fill(t, c, personal)
	fill(t, c, map[core.Field]string{core.FieldRegistrationNumber: "ab"})

	err := c.Advance(context.Background())
	if !core.IsValidationError(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if c.Step() != 0 {
		t.Errorf("step = %d, want 0", c.Step())
	}
	if c.FieldError(core.FieldRegistrationNumber) == "" {
		t.Error("no message for registrationNumber")
	}

	fill(t, c, map[core.Field]string{core.FieldRegistrationNumber: "abcde"})
	if err := c.Advance(context.Background()); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if c.Step() != 1 {
		t.Errorf("step = %d, want 1", c.Step())
	}
	if len(c.Errors()) != 0 {
		t.Errorf("errors after valid advance: %v", c.Errors())
	}
}

func TestAdvance_ValidatesOnlyCurrentStep(t *testing.T) {
	c := newTestController(&recordingSubmitter{})
	fill(t, c, personal)

	// Mess and suggestion fields are empty; the personal step still advances.
	if err := c.Advance(context.Background()); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	err := c.Advance(context.Background())
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	for _, f := range []core.Field{core.FieldDiningMessName, core.FieldMessType, core.FieldMealType} {
		if !verr.Has(f) {
			t.Errorf("missing error for %s", f)
		}
	}
	if verr.Has(core.FieldFoodItemSuggestion) {
		t.Error("validated a field outside the current step")
	}
}

func TestAdvance_SubmitsOnLastStep(t *testing.T) {
	sub := &recordingSubmitter{}
	c := newTestController(sub)
	fillAll(t, c)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := c.Advance(ctx); err != nil {
			t.Fatalf("Advance %d: %v", i, err)
		}
	}
	if len(sub.calls) != 0 {
		t.Fatal("submitted before the last step")
	}
	if err := c.Advance(ctx); err != nil {
		t.Fatalf("final Advance: %v", err)
	}

	if c.Phase() != PhaseSubmitted {
		t.Errorf("phase = %v, want submitted", c.Phase())
	}
	if len(sub.calls) != 1 {
		t.Fatalf("submitter called %d times", len(sub.calls))
	}
	if got := sub.calls[0]; got.StudentName != "Asha Rao" || got.IdempotencyKey != "key-1" {
		t.Errorf("payload = %+v", got)
	}

	summary, ok := c.Summary()
	if !ok || summary.ID != 1 || summary.MessType != core.MessTypeVeg || summary.MealType != core.MealBreakfast {
		t.Errorf("summary = %+v, %v", summary, ok)
	}
}

func TestAdvance_LastStepCatchesEarlierInvalidFields(t *testing.T) {
	sub := &recordingSubmitter{}
	c := newTestController(sub)
	fill(t, c, suggestion)
	if err := c.JumpTo(2); err != nil {
		t.Fatalf("JumpTo: %v", err)
	}

	err := c.Advance(context.Background())
	if !core.IsValidationError(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if c.Step() != 0 {
		t.Errorf("step = %d, want first step with an error", c.Step())
	}
	if len(sub.calls) != 0 {
		t.Error("invalid form was submitted")
	}
}

func TestSubmitFailureKeepsValuesAndKey(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("connection refused")}
	c := newTestController(sub)
	fillAll(t, c)
	c.JumpTo(2)
	ctx := context.Background()

	if err := c.Advance(ctx); err == nil {
		t.Fatal("expected submit error")
	}
	if c.Phase() != PhaseFailed {
		t.Fatalf("phase = %v, want failed", c.Phase())
	}
	if c.Value(core.FieldStudentName) != "Asha Rao" {
		t.Error("values lost after failure")
	}
	if c.LastError() == nil {
		t.Error("LastError not recorded")
	}

	sub.err = nil
	if err := c.Submit(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if c.Phase() != PhaseSubmitted {
		t.Errorf("phase = %v, want submitted", c.Phase())
	}
	if len(sub.calls) != 2 || sub.calls[0].IdempotencyKey != sub.calls[1].IdempotencyKey {
		t.Errorf("retry did not reuse the idempotency key: %+v", sub.calls)
	}
}

func TestEditAfterFailureStartsNewSubmission(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("boom")}
	c := newTestController(sub)
	fillAll(t, c)
	c.Submit(context.Background())

	if err := c.Set(core.FieldStudentName, "Asha R"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if c.Phase() != PhaseEditing {
		t.Errorf("phase = %v, want editing", c.Phase())
	}
	sub.err = nil
	c.Submit(context.Background())
	if sub.calls[0].IdempotencyKey == sub.calls[1].IdempotencyKey {
		t.Error("edited submission reused the previous key")
	}
}

func TestNavigationBlockedWhileSubmitting(t *testing.T) {
	c := newTestController(&recordingSubmitter{})
	fillAll(t, c)
	c.JumpTo(2)

	submit, err := c.Next()
	if err != nil || !submit {
		t.Fatalf("Next = %v, %v", submit, err)
	}
	if c.Phase() != PhaseSubmitting {
		t.Fatalf("phase = %v", c.Phase())
	}

	if err := c.Retreat(); !errors.Is(err, ErrBusy) {
		t.Errorf("Retreat err = %v", err)
	}
	if err := c.JumpTo(0); !errors.Is(err, ErrBusy) {
		t.Errorf("JumpTo err = %v", err)
	}
	if err := c.Set(core.FieldStudentName, "x"); !errors.Is(err, ErrBusy) {
		t.Errorf("Set err = %v", err)
	}
	if _, err := c.Next(); !errors.Is(err, ErrBusy) {
		t.Errorf("Next err = %v", err)
	}
	if c.Step() != 2 {
		t.Errorf("step changed to %d", c.Step())
	}

	c.Complete(42, nil)
	if c.SubmittedID() != 42 || c.Phase() != PhaseSubmitted {
		t.Errorf("after Complete: id=%d phase=%v", c.SubmittedID(), c.Phase())
	}
}

func TestRetreat(t *testing.T) {
	c := newTestController(&recordingSubmitter{})
	if err := c.Retreat(); err != nil || c.Step() != 0 {
		t.Errorf("Retreat at 0: step=%d err=%v", c.Step(), err)
	}
	c.JumpTo(2)
	c.Retreat()
	if c.Step() != 1 {
		t.Errorf("step = %d, want 1", c.Step())
	}
}

func TestJumpToOutOfRange(t *testing.T) {
	c := newTestController(&recordingSubmitter{})
	if err := c.JumpTo(3); !errors.Is(err, ErrNoSuchStep) {
		t.Errorf("err = %v, want ErrNoSuchStep", err)
	}
	if err := c.JumpTo(-1); !errors.Is(err, ErrNoSuchStep) {
		t.Errorf("err = %v, want ErrNoSuchStep", err)
	}
}

func TestProgress(t *testing.T) {
	c := newTestController(&recordingSubmitter{})
	want := []float64{100.0 / 3, 200.0 / 3, 100}
	for step, w := range want {
		c.JumpTo(step)
		if got := c.Progress(); math.Abs(got-w) > 1e-9 {
			t.Errorf("step %d progress = %v, want %v", step, got, w)
		}
	}
}

func TestResetAndSubmitAnother(t *testing.T) {
	c := newTestController(&recordingSubmitter{})
	fillAll(t, c)
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	firstKey := c.IdempotencyKey()

	if err := c.Set(core.FieldStudentName, "x"); !errors.Is(err, ErrSubmitted) {
		t.Errorf("Set after submit err = %v", err)
	}

	c.SubmitAnother()
	if c.Phase() != PhaseEditing {
		t.Errorf("phase = %v", c.Phase())
	}
	if c.Value(core.FieldStudentName) != "Asha Rao" {
		t.Error("SubmitAnother cleared values")
	}
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if c.IdempotencyKey() == firstKey {
		t.Error("second submission reused the first key")
	}

	c.Reset()
	if c.Step() != 0 || c.Phase() != PhaseEditing || c.Values() != (core.NewSubmission{}) {
		t.Errorf("after Reset: step=%d phase=%v values=%+v", c.Step(), c.Phase(), c.Values())
	}
	if _, ok := c.Summary(); ok {
		t.Error("summary available after Reset")
	}
}

func TestCompleteWithValidationErrorFromServer(t *testing.T) {
	c := newTestController(&recordingSubmitter{})
	fillAll(t, c)
	c.JumpTo(2)
	c.Next()

	c.Complete(0, &core.ValidationError{Errors: []core.FieldError{
		{Field: core.FieldMessType, Message: "Please select a listed mess type"},
	}})
	if c.Phase() != PhaseFailed {
		t.Errorf("phase = %v", c.Phase())
	}
	if c.Step() != 1 || c.FieldError(core.FieldMessType) == "" {
		t.Errorf("step=%d errors=%v", c.Step(), c.Errors())
	}
}

func TestRestore(t *testing.T) {
	values := core.NewSubmission{StudentName: "Asha Rao"}
	c := Restore(&recordingSubmitter{}, 9, values, "k1")
	if c.Step() != 2 {
		t.Errorf("step = %d, want clamped to 2", c.Step())
	}
	if c.Value(core.FieldStudentName) != "Asha Rao" || c.IdempotencyKey() != "k1" {
		t.Errorf("restored state = %+v key=%q", c.Values(), c.IdempotencyKey())
	}
}
