package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SheetPickerModel - Interactive day sheet selection
// =============================================================================

// SheetPickerModel is the bubbletea model for choosing planner day sheets.
// All sheets start checked; the chosen ones keep workbook order.
type SheetPickerModel struct {
	Sheets   []string
	Checked  []bool
	Cursor   int
	Height   int
	Offset   int
	Done     bool
	Canceled bool
}

// NewSheetPickerModel creates a picker with every sheet checked.
func NewSheetPickerModel(sheets []string) SheetPickerModel {
	checked := make([]bool, len(sheets))
	for i := range checked {
		checked[i] = true
	}
	return SheetPickerModel{
		Sheets:  sheets,
		Checked: checked,
		Height:  15,
	}
}

// Selected returns the checked sheets in order, or nil when canceled.
func (m SheetPickerModel) Selected() []string {
	if m.Canceled {
		return nil
	}
	var out []string
	for i, s := range m.Sheets {
		if m.Checked[i] {
			out = append(out, s)
		}
	}
	return out
}

func (m SheetPickerModel) Init() tea.Cmd {
	return nil
}

func (m SheetPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Canceled = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Sheets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "space", "x":
			m.Checked = toggled(m.Checked, m.Cursor)
		case "a":
			all := !allChecked(m.Checked)
			checked := make([]bool, len(m.Checked))
			for i := range checked {
				checked[i] = all
			}
			m.Checked = checked
		case "enter":
			m.Done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-6)
	}
	return m, nil
}

func (m SheetPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Day Sheets"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ print  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Sheets))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Checked[i] {
			mark = "[x]"
		}
		day := "—"
		if n := m.dayNumber(i); n > 0 {
			day = fmt.Sprintf("day %d", n)
		}
		rows = append(rows, []string{cursor, mark, m.Sheets[i], day})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Sheet", "Prints as").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Sheets) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case !m.Checked[idx]:
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected", len(m.Selected()), len(m.Sheets))))

	return b.String()
}

// dayNumber is the day a sheet becomes when printed, or 0 if unchecked.
func (m SheetPickerModel) dayNumber(i int) int {
	if !m.Checked[i] {
		return 0
	}
	n := 0
	for j := 0; j <= i; j++ {
		if m.Checked[j] {
			n++
		}
	}
	return n
}

// pickSheets runs the picker in the terminal.
func pickSheets(sheets []string) ([]string, error) {
	final, err := tea.NewProgram(NewSheetPickerModel(sheets)).Run()
	if err != nil {
		return nil, fmt.Errorf("sheet picker: %w", err)
	}
	return final.(SheetPickerModel).Selected(), nil
}

func toggled(checked []bool, i int) []bool {
	out := append([]bool(nil), checked...)
	if i >= 0 && i < len(out) {
		out[i] = !out[i]
	}
	return out
}

func allChecked(checked []bool) bool {
	for _, c := range checked {
		if !c {
			return false
		}
	}
	return true
}
