package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/legalcanvas/pkg/suite"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// SheetListModel - Interactive sheet selection
// =============================================================================

// SheetListModel is the bubbletea model for picking a sheet of a suite.
type SheetListModel struct {
	Suite    *suite.Suite
	Cursor   int
	Selected *suite.Sheet
	Height   int
	Offset   int
}

// NewSheetListModel creates a sheet list starting at the sheet with id
// active, or at the first sheet.
func NewSheetListModel(s *suite.Suite, active string) SheetListModel {
	m := SheetListModel{Suite: s, Height: 15}
	for i, sh := range s.Sheets {
		if sh.ID == active {
			m.Cursor = i
			break
		}
	}
	m.scroll()
	return m
}

func (m SheetListModel) Init() tea.Cmd {
	return nil
}

func (m SheetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Suite.Sheets)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Suite.Sheets)-1, 0)
		case "enter":
			if len(m.Suite.Sheets) == 0 {
				return m, nil
			}
			sh := m.Suite.Sheets[m.Cursor]
			m.Selected = &sh
			return m, tea.Quit
		}
		m.scroll()
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.scroll()
	}
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *SheetListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m SheetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Suite.ProjectName))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ export  q quit"))
	b.WriteString("\n\n")

	if len(m.Suite.Sheets) == 0 {
		b.WriteString(listDimStyle.Render("  no sheets in this suite"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Suite.Sheets))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		sh := m.Suite.Sheets[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, sheetIcon(sh.Type), sh.Title, sh.Type.Label()})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Sheet", "Type").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Suite.Sheets) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 1 && m.Suite.Sheets[idx].Type == suite.TypeRiskHeatmap {
				base = base.Foreground(colorYellow)
			} else if col == 3 {
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				if col == 2 {
					return base.Foreground(colorIndigo).Bold(true)
				}
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if explanation := m.Suite.Sheets[m.Cursor].Explanation; explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(72).Foreground(colorGray).Render(explanation))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Suite.Sheets))))

	return b.String()
}
