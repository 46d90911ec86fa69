package tui

// DoneMsg reports a finished background action.
type DoneMsg string

// ErrMsg reports a failed background action.
type ErrMsg struct{ Err error }

func (e ErrMsg) Error() string { return e.Err.Error() }

// submitResultMsg carries the outcome of a form submission.
type submitResultMsg struct {
	id  int64
	err error
}
