package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/client"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/form"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#F97316")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	labelStyle     = lipgloss.NewStyle().Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Padding(0, 1)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(1, 2)
)

func (m *Model) View() string {
	var body string
	switch m.view {
	case viewForm:
		body = m.formView()
	case viewDone:
		body = m.doneView()
	default:
		body = m.list.View()
	}

	lines := []string{body}
	if m.status != "" {
		lines = append(lines, successStyle.Render(m.status))
	}
	if m.err != nil {
		lines = append(lines, errorStyle.Render(describe(m.err)))
	}
	lines = append(lines, subtleStyle.Render(m.help()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) help() string {
	switch m.view {
	case viewForm:
		return "tab/shift+tab: field • ←/→: choose option • enter: next • esc: back • f1-f3: jump to step • ctrl+c: quit"
	case viewDone:
		return "a: submit another • x: excel report • p: pdf report • enter: home • q: quit"
	default:
		return "↑/↓: move • enter: select • esc: back • q: quit"
	}
}

func (m *Model) formView() string {
	c := m.ctrl
	layout := c.Layout()
	step := c.CurrentStep()

	var b strings.Builder
	b.WriteString(titleStyle.Render(layout.Title) + "\n")
	b.WriteString(subtleStyle.Render(layout.Subtitle) + "\n\n")
	b.WriteString(m.bar.ViewAs(c.Progress()/100) + "\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Step %d of %d", c.Step()+1, c.TotalSteps())) + "\n\n")

	tabs := make([]string, len(layout.Steps))
	for i, s := range layout.Steps {
		if i == c.Step() {
			tabs[i] = activeTabStyle.Render(s.Tab)
		} else {
			tabs[i] = tabStyle.Render(s.Tab)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	b.WriteString(labelStyle.Render(step.Heading) + "\n")
	b.WriteString(subtleStyle.Render(step.Description) + "\n\n")

	for i, fl := range step.Fields {
		b.WriteString(m.fieldView(fl, i == m.focus))
		b.WriteString("\n")
	}

	switch c.Phase() {
	case form.PhaseSubmitting:
		b.WriteString(subtleStyle.Render("Submitting..."))
	case form.PhaseEditing, form.PhaseFailed:
		if c.IsLastStep() {
			b.WriteString(selectedStyle.Render("[ Submit Feedback ]"))
		} else {
			b.WriteString(selectedStyle.Render("[ Next ]"))
		}
	}
	return boxStyle.Render(b.String())
}

func (m *Model) fieldView(fl form.FieldLayout, focused bool) string {
	spec := fl.Spec()

	marker := "  "
	if focused {
		marker = selectedStyle.Render("> ")
	}

	var b strings.Builder
	b.WriteString(marker + labelStyle.Render(spec.Label+" *") + "\n")

	if spec.Type == core.FieldEnum {
		opts := make([]string, len(spec.Options))
		for i, o := range spec.Options {
			if i == m.choice[fl.Field] {
				opts[i] = selectedStyle.Render("(•) " + o.Label)
			} else {
				opts[i] = "( ) " + o.Label
			}
		}
		b.WriteString("  " + strings.Join(opts, "  ") + "\n")
	} else {
		b.WriteString("  " + m.inputs[fl.Field].View() + "\n")
	}

	if fl.Hint != "" {
		b.WriteString("  " + subtleStyle.Render(fl.Hint) + "\n")
	}
	if msg := m.ctrl.FieldError(fl.Field); msg != "" {
		b.WriteString("  " + errorStyle.Render(msg) + "\n")
	}
	return b.String()
}

func (m *Model) doneView() string {
	s, ok := m.ctrl.Summary()
	if !ok {
		return ""
	}
	lines := []string{
		successStyle.Render("Thank You!"),
		"Your feedback has been submitted successfully.",
		"",
		fmt.Sprintf("%s %s", labelStyle.Render("Name:"), s.StudentName),
		fmt.Sprintf("%s %s", labelStyle.Render("Mess Type:"), s.MessType),
		fmt.Sprintf("%s %s", labelStyle.Render("Meal Type:"), s.MealType),
		fmt.Sprintf("%s #%d", labelStyle.Render("Reference ID:"), s.ID),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// describe turns an error into the line shown under the current view.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case core.IsValidationError(err):
		return "Please correct the highlighted fields."
	case errors.As(err, &apiErr):
		if apiErr.Code != "" {
			return fmt.Sprintf("%s (Code: %s)", apiErr.Message, apiErr.Code)
		}
		return apiErr.Message
	case client.IsUnavailable(err):
		return "Could not reach the server: " + err.Error()
	}
	return core.FormatUserError(err)
}
