package cli

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/legalcanvas/pkg/suite"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m SheetListModel, msgs ...tea.Msg) (SheetListModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(SheetListModel)
	}
	return m, cmd
}

func TestSheetListNavigation(t *testing.T) {
	m := NewSheetListModel(testSuite(), "")

	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"starts at first", nil, 0},
		{"down", []string{"down"}, 1},
		{"down stops at last", []string{"down", "down", "j"}, 1},
		{"up stops at first", []string{"up", "k"}, 0},
		{"end then home", []string{"G", "g"}, 0},
		{"end", []string{"G"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msgs []tea.Msg
			for _, k := range tt.keys {
				msgs = append(msgs, key(k))
			}
			got, _ := update(t, m, msgs...)
			if got.Cursor != tt.want {
				t.Errorf("Cursor = %d, want %d", got.Cursor, tt.want)
			}
		})
	}
}

func TestSheetListStartsAtActive(t *testing.T) {
	m := NewSheetListModel(testSuite(), "s2")
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}
}

func TestSheetListSelect(t *testing.T) {
	m, cmd := update(t, NewSheetListModel(testSuite(), ""), key("down"), key("enter"))

	if m.Selected == nil || m.Selected.ID != "s2" {
		t.Fatalf("Selected = %v, want s2", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestSheetListQuitWithoutSelection(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m, cmd := update(t, NewSheetListModel(testSuite(), ""), key(k))
		if m.Selected != nil {
			t.Errorf("%s: Selected = %v, want nil", k, m.Selected)
		}
		if cmd == nil {
			t.Errorf("%s should quit the program", k)
		}
	}
}

func TestSheetListEmptySuite(t *testing.T) {
	m, cmd := update(t, NewSheetListModel(&suite.Suite{ProjectName: "Empty"}, ""), key("enter"))
	if m.Selected != nil || cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
	if !strings.Contains(m.View(), "no sheets") {
		t.Errorf("View() = %q, want empty notice", m.View())
	}
}

func TestSheetListScrolls(t *testing.T) {
	s := &suite.Suite{ProjectName: "Long"}
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		s.Sheets = append(s.Sheets, suite.Sheet{ID: id, Title: "Sheet " + id, Type: suite.TypeTimeline})
	}
	m, _ := update(t, NewSheetListModel(s, ""), tea.WindowSizeMsg{Width: 80, Height: 10})
	if m.Height != 5 {
		t.Fatalf("Height = %d, want 5", m.Height)
	}

	m, _ = update(t, m, key("G"))
	if m.Offset != 3 {
		t.Errorf("Offset = %d, want 3", m.Offset)
	}
	view := m.View()
	if strings.Contains(view, "Sheet a") || !strings.Contains(view, "Sheet h") {
		t.Errorf("View() should show the last window:\n%s", view)
	}
}

func TestSheetListView(t *testing.T) {
	view := NewSheetListModel(testSuite(), "").View()
	for _, want := range []string{"Supply Agreement", "Late Payment", "Risk Exposure", "risk heatmap", iconAlert, "[1/2]", "What happens"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestSheetTable(t *testing.T) {
	got := sheetTable(testSuite())
	for _, want := range []string{"ID", "s1", "s2", "Late Payment", "logic flow", iconClause, iconAlert} {
		if !strings.Contains(got, want) {
			t.Errorf("sheetTable() missing %q:\n%s", want, got)
		}
	}
}

func TestPrintSuite(t *testing.T) {
	var buf bytes.Buffer
	defer redirectOutput(&buf)()

	printSuite(&suite.Suite{ProjectName: "Empty"})
	if !strings.Contains(buf.String(), "Empty") || strings.Contains(buf.String(), "Title") {
		t.Errorf("printSuite() of an empty suite = %q, want name without table", buf.String())
	}
}
