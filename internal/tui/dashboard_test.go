// ABOUTME: Tests for the dashboard model
// ABOUTME: Verifies loading, loaded, and error render states

package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nirvasoft/A365SS/internal/models"
	"github.com/Nirvasoft/A365SS/internal/store"
)

func testModel() *Model {
	m := New(Backends{}, store.Session{UserID: "mya@corp.example"})
	m.width = 100
	m.height = 40
	return m
}

func TestView_Loading(t *testing.T) {
	m := testModel()

	view := m.View()

	if !strings.Contains(view, "Loading") {
		t.Errorf("expected loading indicator, got %s", view)
	}
	if !strings.Contains(view, "mya@corp.example") {
		t.Error("expected user id in header")
	}
	if !strings.Contains(view, "refresh") || !strings.Contains(view, "quit") {
		t.Error("expected key hints in footer")
	}
}

func TestView_Loaded(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(loadedMsg{
		requests:  []models.Request{{StartDate: "20260810", RequestTypeDesc: "Leave"}},
		approvals: []models.Request{{Name: "Ko Aung", RequestTypeDesc: "Overtime"}},
		leave:     []models.LeaveSummaryItem{{LeaveType: "Annual", RemainingDays: 7.5}},
		holidays:  []models.Holiday{{Date: "2026-12-25", HolidayName: "Christmas"}},
	})
	m = updated.(*Model)

	view := m.View()

	for _, want := range []string{
		"Pending Requests (1)",
		"Waiting on You (1)",
		"Leave Balance",
		"Holidays",
		"Ko Aung",
		"Annual",
		"Christmas",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if strings.Contains(view, "Loading") {
		t.Error("expected loading indicator gone")
	}
}

func TestView_Error(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(loadedMsg{err: errors.New("backend unreachable")})
	m = updated.(*Model)

	view := m.View()

	if !strings.Contains(view, "backend unreachable") {
		t.Errorf("expected error in view, got %s", view)
	}
}

func TestUpdate_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		m := testModel()
		var msg tea.KeyMsg
		switch key {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}

		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("expected quit command for %q", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.Quit for %q", key)
		}
	}
}

func TestUpdate_ReloadKey(t *testing.T) {
	m := testModel()
	m.loading = false
	m.err = errors.New("stale")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = updated.(*Model)

	if !m.loading || m.err != nil {
		t.Error("expected reload to reset state")
	}
	if cmd == nil {
		t.Error("expected reload command")
	}
}
