package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// downloadTimeout bounds a single report download.
const downloadTimeout = time.Minute

type MenuItem struct {
	Label   string
	Hint    string
	Submenu *Menu
	Action  func() tea.Cmd
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

// Title, Description and FilterValue make MenuItem a list item.
func (i MenuItem) Title() string       { return i.Label }
func (i MenuItem) Description() string { return i.Hint }
func (i MenuItem) FilterValue() string { return i.Label }

// linkParents wires Parent pointers and makes every "Back" item return to
// the enclosing menu.
func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent
	for i := range menu.Items {
		item := &menu.Items[i]
		if item.Label == "Back" {
			item.Submenu = parent
			continue
		}
		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

func buildMenuTree(m *Model) *Menu {
	reports := &Menu{
		Title: "Reports",
		Items: []MenuItem{
			{Label: "Download Excel Report", Hint: "Save submissions.xlsx to " + m.outDir,
				Action: func() tea.Cmd { return m.download("excel") }},
			{Label: "Download PDF Report", Hint: "Save submissions.pdf to " + m.outDir,
				Action: func() tea.Cmd { return m.download("pdf") }},
			{Label: "Back"},
		},
	}

	root := &Menu{
		Title: "Mess Menu System",
		Items: []MenuItem{
			{Label: "Submit Feedback", Hint: "Suggest a dish for the mess menu",
				Action: func() tea.Cmd { return m.openForm() }},
			{Label: "Reports ->", Hint: "Export every submission", Submenu: reports},
			{Label: "Check Server", Hint: m.apiURL,
				Action: func() tea.Cmd { return m.checkHealth() }},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		},
	}

	linkParents(root, nil)
	return root
}

// download saves a report into the output directory.
func (m *Model) download(format string) tea.Cmd {
	api, dir := m.api, m.outDir
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
		defer cancel()

		tmp, err := os.CreateTemp(dir, "submissions-*.part")
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("create file: %w", err)}
		}
		defer os.Remove(tmp.Name())

		name, err := api.Download(ctx, format, tmp)
		if cerr := tmp.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return ErrMsg{Err: err}
		}

		dest := filepath.Join(dir, filepath.Base(name))
		if err := os.Rename(tmp.Name(), dest); err != nil {
			return ErrMsg{Err: fmt.Errorf("save report: %w", err)}
		}
		return DoneMsg("Saved " + dest)
	}
}

func (m *Model) checkHealth() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := api.Health(ctx); err != nil {
			return ErrMsg{Err: err}
		}
		return DoneMsg("Server is up")
	}
}
