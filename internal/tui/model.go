// Package tui is a terminal front end for the feedback form. It drives a
// form.Controller and delivers submissions through the HTTP client.
package tui

import (
	"context"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/client"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/form"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewMenu view = iota
	viewForm
	viewDone
)

// Options configures a Model.
type Options struct {
	APIURL  string        // shown in the menu
	OutDir  string        // where downloaded reports are saved
	KeyFunc func() string // idempotency key generator, defaults to UUIDs
}

/* ----------------------------------------
	MODEL
---------------------------------------- */

type Model struct {
	api    *client.Client
	apiURL string
	outDir string

	ctrl   *form.Controller
	inputs map[core.Field]textinput.Model
	choice map[core.Field]int
	focus  int

	menu *Menu
	list list.Model
	bar  progress.Model

	view   view
	status string
	err    error
}

// New returns a model showing the main menu.
func New(api *client.Client, opts Options) *Model {
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	var copts []form.Option
	if opts.KeyFunc != nil {
		copts = append(copts, form.WithKeyFunc(opts.KeyFunc))
	}

	m := &Model{
		api:    api,
		apiURL: opts.APIURL,
		outDir: opts.OutDir,
		ctrl:   form.NewController(api, copts...),
		inputs: make(map[core.Field]textinput.Model),
		choice: make(map[core.Field]int),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(48)),
	}

	for _, step := range m.ctrl.Layout().Steps {
		for _, fl := range step.Fields {
			if fl.Spec().Type == core.FieldEnum {
				m.choice[fl.Field] = -1
				continue
			}
			ti := textinput.New()
			ti.Placeholder = fl.Placeholder
			ti.CharLimit = fl.Spec().MaxLen
			ti.Width = 48
			m.inputs[fl.Field] = ti
		}
	}

	m.list = list.New(nil, list.NewDefaultDelegate(), 60, 16)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(false)
	m.list.SetShowHelp(false)
	m.enterMenu(buildMenuTree(m))
	return m
}

// Controller exposes the form state.
func (m *Model) Controller() *form.Controller { return m.ctrl }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(msg.Height-6, 8))
		m.bar.Width = min(max(msg.Width-8, 20), 60)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case DoneMsg:
		m.status, m.err = string(msg), nil
		return m, nil

	case ErrMsg:
		m.status, m.err = "", msg.Err
		return m, nil

	case submitResultMsg:
		m.ctrl.Complete(msg.id, msg.err)
		if msg.err != nil {
			m.err = msg.err
			m.focus = m.firstInvalid()
			return m, m.syncFocus()
		}
		m.err = nil
		m.view = viewDone
		return m, nil
	}

	switch m.view {
	case viewForm:
		return m.updateForm(msg)
	case viewDone:
		return m.updateDone(msg)
	default:
		return m.updateMenu(msg)
	}
}

/* ----------------------------------------
	MENU
---------------------------------------- */

func (m *Model) enterMenu(menu *Menu) {
	items := make([]list.Item, len(menu.Items))
	for i, item := range menu.Items {
		items[i] = item
	}
	m.menu = menu
	m.list.Title = menu.Title
	m.list.SetItems(items)
	m.list.Select(0)
}

func (m *Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			item, ok := m.list.SelectedItem().(MenuItem)
			if !ok {
				return m, nil
			}
			if item.Submenu != nil {
				m.enterMenu(item.Submenu)
				return m, nil
			}
			if item.Action != nil {
				m.status, m.err = "", nil
				return m, item.Action()
			}
			return m, nil
		case "esc", "backspace":
			if m.menu.Parent != nil {
				m.enterMenu(m.menu.Parent)
			}
			return m, nil
		case "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

/* ----------------------------------------
	FORM
---------------------------------------- */

func (m *Model) openForm() tea.Cmd {
	m.view = viewForm
	m.status, m.err = "", nil
	m.focus = 0
	return m.syncFocus()
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.ctrl.Phase() == form.PhaseSubmitting {
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}

	fields := m.ctrl.CurrentStep().Fields
	switch key.String() {
	case "enter":
		return m, m.next()
	case "tab", "down":
		m.focus = (m.focus + 1) % len(fields)
		return m, m.syncFocus()
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(fields)) % len(fields)
		return m, m.syncFocus()
	case "esc":
		if m.ctrl.Step() == 0 {
			m.blurAll()
			m.view = viewMenu
			return m, nil
		}
		if err := m.ctrl.Retreat(); err != nil {
			return m, nil
		}
		m.focus = 0
		return m, m.syncFocus()
	case "f1", "f2", "f3", "f4", "f5":
		if err := m.ctrl.JumpTo(int(key.String()[1] - '1')); err != nil {
			return m, nil
		}
		m.focus = 0
		return m, m.syncFocus()
	case "left", "right":
		if f := fields[m.focus]; f.Spec().Type == core.FieldEnum {
			delta := 1
			if key.String() == "left" {
				delta = -1
			}
			m.cycle(f.Field, delta)
			return m, nil
		}
	}
	return m.updateInput(msg)
}

func (m *Model) focused() core.Field {
	fields := m.ctrl.CurrentStep().Fields
	if m.focus >= len(fields) {
		m.focus = 0
	}
	return fields[m.focus].Field
}

func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := m.focused()
	ti, ok := m.inputs[f]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	m.inputs[f] = ti
	if ti.Value() != m.ctrl.Value(f) {
		_ = m.ctrl.Set(f, ti.Value())
	}
	return m, cmd
}

// cycle moves an enum field to the next or previous option.
func (m *Model) cycle(f core.Field, delta int) {
	spec, _ := core.Spec(f)
	n := len(spec.Options)
	idx := m.choice[f]
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = (idx + delta + n) % n
	}
	if err := m.ctrl.Set(f, spec.Options[idx].Value); err == nil {
		m.choice[f] = idx
	}
}

// next advances the form. On the last step it returns the command that
// delivers the submission.
func (m *Model) next() tea.Cmd {
	m.err = nil
	submit, err := m.ctrl.Next()
	if err != nil {
		m.focus = m.firstInvalid()
		return m.syncFocus()
	}
	if !submit {
		m.focus = 0
		return m.syncFocus()
	}

	m.blurAll()
	api, payload := m.api, m.ctrl.Payload()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
		defer cancel()
		id, err := api.Submit(ctx, payload)
		return submitResultMsg{id: id, err: err}
	}
}

func (m *Model) firstInvalid() int {
	for i, f := range m.ctrl.CurrentStep().Fields {
		if m.ctrl.FieldError(f.Field) != "" {
			return i
		}
	}
	return 0
}

func (m *Model) blurAll() {
	for f, ti := range m.inputs {
		ti.Blur()
		m.inputs[f] = ti
	}
}

func (m *Model) syncFocus() tea.Cmd {
	m.blurAll()
	f := m.focused()
	ti, ok := m.inputs[f]
	if !ok {
		return nil
	}
	cmd := ti.Focus()
	m.inputs[f] = ti
	return cmd
}

/* ----------------------------------------
	CONFIRMATION
---------------------------------------- */

func (m *Model) updateDone(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "a":
		m.ctrl.SubmitAnother()
		return m, m.openForm()
	case "x":
		return m, m.download("excel")
	case "p":
		return m, m.download("pdf")
	case "enter", "esc", "h":
		m.resetForm()
		m.view = viewMenu
		return m, nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) resetForm() {
	m.ctrl.Reset()
	for f, ti := range m.inputs {
		ti.SetValue("")
		ti.Blur()
		m.inputs[f] = ti
	}
	for f := range m.choice {
		m.choice[f] = -1
	}
	m.focus = 0
	m.status, m.err = "", nil
}
