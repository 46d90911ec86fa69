package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/client"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/form"
	tea "github.com/charmbracelet/bubbletea"
)

type recorder struct {
	mu     sync.Mutex
	keys   []string
	bodies []map[string]string
	fail   bool
}

func (rec *recorder) handler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/submit":
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		rec.mu.Lock()
		rec.keys = append(rec.keys, r.Header.Get(client.IdempotencyHeader))
		rec.bodies = append(rec.bodies, body)
		fail := rec.fail
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Unable to connect to the feedback store","code":"DB004"}`))
			return
		}
		w.Write([]byte(`{"message":"Submission successful","id":7}`))
	case "/api/report/excel":
		w.Header().Set("Content-Disposition", `attachment; filename="submissions.xlsx"`)
		w.Write([]byte("xlsx-bytes"))
	case "/healthz":
		w.Write([]byte(`{"status":"ok"}`))
	default:
		http.NotFound(w, r)
	}
}

func (rec *recorder) snapshot() ([]string, []map[string]string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]string(nil), rec.keys...), append([]map[string]string(nil), rec.bodies...)
}

func newTestModel(t *testing.T) (*Model, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	t.Cleanup(srv.Close)

	api, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	n := 0
	m := New(api, Options{
		APIURL: srv.URL,
		OutDir: t.TempDir(),
		KeyFunc: func() string {
			n++
			return "key-" + strconv.Itoa(n)
		},
	})
	return m, rec
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// fillForm enters a valid submission and returns the command from the
// final step.
func fillForm(t *testing.T, m *Model) tea.Cmd {
	t.Helper()
	press(m, tea.KeyEnter) // "Submit Feedback"
	if m.view != viewForm {
		t.Fatalf("view = %v, want form", m.view)
	}

	typeText(m, "21BCE1234")
	press(m, tea.KeyTab)
	typeText(m, "Asha Rao")
	press(m, tea.KeyTab)
	typeText(m, "A-204")
	press(m, tea.KeyEnter)
	if m.ctrl.Step() != 1 {
		t.Fatalf("step = %d after personal info, errors %v", m.ctrl.Step(), m.ctrl.Errors())
	}

	press(m, tea.KeyRight)
	press(m, tea.KeyTab)
	press(m, tea.KeyRight)
	press(m, tea.KeyTab)
	press(m, tea.KeyRight)
	press(m, tea.KeyEnter)
	if m.ctrl.Step() != 2 {
		t.Fatalf("step = %d after mess details, errors %v", m.ctrl.Step(), m.ctrl.Errors())
	}

	typeText(m, "Masala dosa on Fridays")
	press(m, tea.KeyTab)
	press(m, tea.KeyRight)
	cmd := press(m, tea.KeyEnter)
	if m.ctrl.Phase() != form.PhaseSubmitting {
		t.Fatalf("phase = %v, want submitting (errors %v)", m.ctrl.Phase(), m.ctrl.Errors())
	}
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	return cmd
}

func TestSubmitFlow(t *testing.T) {
	m, rec := newTestModel(t)

	cmd := fillForm(t, m)
	m.Update(cmd())

	if m.view != viewDone {
		t.Fatalf("view = %v, want done (err %v)", m.view, m.err)
	}
	s, ok := m.ctrl.Summary()
	if !ok || s.ID != 7 || s.StudentName != "Asha Rao" {
		t.Errorf("summary = %+v, %v", s, ok)
	}

	keys, bodies := rec.snapshot()
	if len(bodies) != 1 {
		t.Fatalf("server saw %d submissions", len(bodies))
	}
	want := map[string]string{
		"reg_no":          "21BCE1234",
		"student_name":    "Asha Rao",
		"block_room":      "A-204",
		"mess_name":       "Central Mess",
		"mess_type":       "Veg",
		"meal_type":       "Breakfast",
		"food_suggestion": "Masala dosa on Fridays",
		"feasibility":     "Yes",
	}
	for k, v := range want {
		if got := bodies[0][k]; got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if keys[0] != "key-1" {
		t.Errorf("Idempotency-Key = %q", keys[0])
	}
}

func TestStepValidationBlocksAdvance(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyEnter)

	typeText(m, "21BCE1234")
	press(m, tea.KeyTab)
	typeText(m, "A")
	press(m, tea.KeyEnter)

	if m.ctrl.Step() != 0 {
		t.Fatalf("step = %d, want 0", m.ctrl.Step())
	}
	if m.ctrl.FieldError("studentName") == "" {
		t.Error("expected a name error")
	}
	if m.focus != 1 {
		t.Errorf("focus = %d, want the first invalid field", m.focus)
	}
}

func TestSubmitFailureKeepsKeyForRetry(t *testing.T) {
	m, rec := newTestModel(t)
	rec.mu.Lock()
	rec.fail = true
	rec.mu.Unlock()

	cmd := fillForm(t, m)
	m.Update(cmd())

	if m.ctrl.Phase() != form.PhaseFailed {
		t.Fatalf("phase = %v, want failed", m.ctrl.Phase())
	}
	if m.view != viewForm || m.err == nil {
		t.Fatalf("view = %v err = %v", m.view, m.err)
	}
	if got := describe(m.err); got != "Unable to connect to the feedback store (Code: DB004)" {
		t.Errorf("describe = %q", got)
	}

	rec.mu.Lock()
	rec.fail = false
	rec.mu.Unlock()

	cmd = press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected a retry command")
	}
	m.Update(cmd())

	if m.view != viewDone {
		t.Fatalf("view = %v after retry", m.view)
	}
	if keys, _ := rec.snapshot(); len(keys) != 2 || keys[0] != keys[1] {
		t.Errorf("keys = %v, want the same key twice", keys)
	}
}

func TestSubmitAnotherKeepsValues(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := fillForm(t, m)
	m.Update(cmd())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if m.view != viewForm || m.ctrl.Phase() != form.PhaseEditing {
		t.Fatalf("view = %v phase = %v", m.view, m.ctrl.Phase())
	}
	if m.ctrl.Values().StudentName != "Asha Rao" {
		t.Errorf("values were cleared: %+v", m.ctrl.Values())
	}
	if m.ctrl.IdempotencyKey() != "" {
		t.Errorf("key = %q, want a fresh submission", m.ctrl.IdempotencyKey())
	}
}

func TestHomeResetsForm(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := fillForm(t, m)
	m.Update(cmd())

	press(m, tea.KeyEnter)
	if m.view != viewMenu {
		t.Fatalf("view = %v, want menu", m.view)
	}
	if m.ctrl.Values().StudentName != "" || m.inputs["studentName"].Value() != "" {
		t.Error("form was not cleared")
	}
	for f, idx := range m.choice {
		if idx != -1 {
			t.Errorf("%s choice = %d", f, idx)
		}
	}
}

func TestEscapeNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyEnter)
	typeText(m, "21BCE1234")
	press(m, tea.KeyTab)
	typeText(m, "Asha")
	press(m, tea.KeyTab)
	typeText(m, "A-1")
	press(m, tea.KeyEnter)
	if m.ctrl.Step() != 1 {
		t.Fatalf("step = %d", m.ctrl.Step())
	}

	press(m, tea.KeyEsc)
	if m.ctrl.Step() != 0 || m.view != viewForm {
		t.Fatalf("step = %d view = %v", m.ctrl.Step(), m.view)
	}
	press(m, tea.KeyEsc)
	if m.view != viewMenu {
		t.Fatalf("view = %v, want menu", m.view)
	}
	if m.ctrl.Values().RegistrationNumber != "21BCE1234" {
		t.Error("leaving the form dropped its values")
	}
}

func TestJumpToStep(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyEnter)
	press(m, tea.KeyF3)
	if m.ctrl.Step() != 2 {
		t.Errorf("step = %d, want 2", m.ctrl.Step())
	}
	press(m, tea.KeyF1)
	if m.ctrl.Step() != 0 {
		t.Errorf("step = %d, want 0", m.ctrl.Step())
	}
}

func TestEnumCyclesBothWays(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyEnter)
	m.ctrl.JumpTo(1)
	m.focus = 0

	press(m, tea.KeyLeft)
	if got := m.ctrl.Value("diningMessName"); got != "West Wing Mess" {
		t.Errorf("left from empty = %q", got)
	}
	press(m, tea.KeyRight)
	if got := m.ctrl.Value("diningMessName"); got != "Central Mess" {
		t.Errorf("right wraps to %q", got)
	}
}

func TestMenuReportsDownload(t *testing.T) {
	m, _ := newTestModel(t)

	m.list.Select(1)
	press(m, tea.KeyEnter)
	if m.menu.Title != "Reports" {
		t.Fatalf("menu = %q", m.menu.Title)
	}

	cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected a download command")
	}
	msg := cmd()
	done, ok := msg.(DoneMsg)
	if !ok {
		t.Fatalf("msg = %#v", msg)
	}
	m.Update(done)

	data, err := os.ReadFile(filepath.Join(m.outDir, "submissions.xlsx"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(data) != "xlsx-bytes" {
		t.Errorf("report = %q", data)
	}
	if m.status == "" {
		t.Error("status not shown")
	}

	press(m, tea.KeyEsc)
	if m.menu.Title != "Mess Menu System" {
		t.Errorf("esc returned to %q", m.menu.Title)
	}
}

func TestCheckServer(t *testing.T) {
	m, _ := newTestModel(t)
	m.list.Select(2)
	cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected a health command")
	}
	if msg, ok := cmd().(DoneMsg); !ok || msg != "Server is up" {
		t.Errorf("msg = %#v", msg)
	}
}

func TestViewRendersCurrentState(t *testing.T) {
	m, _ := newTestModel(t)
	if v := m.View(); v == "" {
		t.Fatal("empty menu view")
	}
	press(m, tea.KeyEnter)
	if v := m.View(); !strings.Contains(v, "Step 1 of 3") || !strings.Contains(v, "Registration Number") {
		t.Errorf("form view missing step header:\n%s", v)
	}
}
