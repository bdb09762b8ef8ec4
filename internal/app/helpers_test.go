package app

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/vscroll/internal/config"
	"github.com/treykane/vscroll/internal/feed"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func syntheticModel(t *testing.T) *Model {
	t.Helper()
	m := New(config.Config{Synthetic: true, GlamourStyle: "notty"}, feed.SyntheticSource{})
	t.Cleanup(m.Close)
	return m
}

// resize delivers a window size and runs the resulting start command.
func resize(t *testing.T, m *Model, width, height int) {
	t.Helper()
	_, cmd := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	if cmd == nil {
		t.Fatalf("expected a start command after resize to %dx%d (status %q)", width, height, m.status)
	}
	finishStart(t, m, cmd)
}

func finishStart(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	msg, ok := cmd().(engineStartedMsg)
	if !ok {
		t.Fatal("expected an engineStartedMsg")
	}
	m.Update(msg)
	if !m.ready() {
		t.Fatalf("expected the engine to be ready, status %q", m.status)
	}
}

func press(m *Model, key string, times int) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "pgdown":
		msg = tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		msg = tea.KeyMsg{Type: tea.KeyPgUp}
	case "ctrl+d":
		msg = tea.KeyMsg{Type: tea.KeyCtrlD}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	var cmd tea.Cmd
	for i := 0; i < times; i++ {
		_, cmd = m.Update(msg)
	}
	return cmd
}
