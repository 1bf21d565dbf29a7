package explorer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/msto63/monkey/internal/service"
	"github.com/msto63/monkey/pkg/core/logging"
)

func newTestModel(t *testing.T, initial string) Model {
	t.Helper()

	logger := logging.Wrap(logging.NewLogger(logging.LoggerConfig{Output: &bytes.Buffer{}}), "test")
	svc, err := service.NewService(service.Config{Logger: logger})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	m := New(context.Background(), svc, initial)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return updated.(Model)
}

// analyzed runs the analysis for the current editor state synchronously
func analyzed(m Model) Model {
	updated, _ := m.Update(m.analyze(m.seq, m.Source())())
	return updated.(Model)
}

func TestModel_InitialAnalysis(t *testing.T) {
	m := analyzed(newTestModel(t, "let x = 5 * -y;"))

	if m.parse == nil || !m.parse.OK {
		t.Fatalf("parse = %+v, want OK", m.parse)
	}
	out := m.renderOutput()
	for _, want := range []string{"let x = (5 * (-y));", "Diagnostics (0)", "Tokens (9)", `Ident("x")`, "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(m.View(), "ok, 1 statements") {
		t.Errorf("header should report success:\n%s", m.View())
	}
}

func TestModel_TypingTriggersAnalysis(t *testing.T) {
	m := newTestModel(t, "")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("let = 5;")})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("editing should schedule an analysis")
	}
	if m.Source() != "let = 5;" {
		t.Fatalf("Source() = %q", m.Source())
	}
	if m.seq != 1 {
		t.Errorf("seq = %d, want 1", m.seq)
	}

	m = analyzed(m)
	if m.parse == nil || m.parse.OK {
		t.Fatalf("parse = %+v, want diagnostics", m.parse)
	}
	if out := m.renderOutput(); !strings.Contains(out, "1:5: expect token identifier, but received =") {
		t.Errorf("output missing diagnostic:\n%s", out)
	}
}

func TestModel_StaleAnalysisDropped(t *testing.T) {
	m := newTestModel(t, "a")
	stale := m.analyze(m.seq, "b")()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	m = updated.(Model)
	updated, _ = m.Update(stale)
	m = updated.(Model)

	if m.source != "" || m.tokens != nil {
		t.Errorf("stale result applied: source = %q", m.source)
	}
}

func TestModel_Keys(t *testing.T) {
	m := analyzed(newTestModel(t, "x"))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if !m.outputFocused {
		t.Error("tab should focus the output")
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	m = updated.(Model)
	if m.Source() != "x" {
		t.Errorf("keys must not reach the editor while output is focused, Source() = %q", m.Source())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)
	if !strings.Contains(m.renderOutput(), "Program (1 statements)") {
		t.Errorf("ctrl+t should show the tree:\n%s", m.renderOutput())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should return tea.Quit")
	}
}
