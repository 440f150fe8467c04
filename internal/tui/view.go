package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"envboot/internal/model"
	"envboot/internal/selection"
)

const (
	colorText              = lipgloss.Color("255")
	colorBorder            = lipgloss.Color("240")
	colorBorderHighlighted = lipgloss.Color("81") // Sky Blue/Cyan
	colorAutoboot          = lipgloss.Color("214") // Gold
	colorWarning           = lipgloss.Color("196")
	colorRule              = lipgloss.Color("255")

	noEnvironmentsWarning = "No valid environments found. Press q to quit to the system menu."

	rowHeight      = 3 // text line plus top/bottom border
	headerHeight   = 2
	footerHeight   = 2
	defaultWidth   = 80
	defaultHeight  = 24
	horizontalPad  = 2
	minimumRowSize = 20
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	versionStyle = lipgloss.NewStyle().
			Foreground(colorBorder)

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)
)

// rowLook is how one environment row is drawn.
type rowLook struct {
	Border      lipgloss.Border
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
}

// lookFor decides the border and colours of row i. The cursor row always
// gets the thick highlighted border; the autoboot row is tinted, and when
// both fall on the same row the text keeps the autoboot tint.
func lookFor(i int, s selection.State) rowLook {
	look := rowLook{
		Border:      lipgloss.NormalBorder(),
		BorderColor: colorBorder,
		TextColor:   colorText,
	}
	autoboot := i == s.Autoboot
	if autoboot {
		look.BorderColor = colorAutoboot
		look.TextColor = colorAutoboot
	}
	if i == s.Cursor {
		look.Border = lipgloss.ThickBorder()
		look.BorderColor = colorBorderHighlighted
	}
	return look
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.Done {
		// Final blank frame before the surface is released.
		return ""
	}

	width := m.WindowSize.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := m.WindowSize.Height
	if height <= 0 {
		height = defaultHeight
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n")

	bodyHeight := height - headerHeight - footerHeight
	if m.Environments.Empty() {
		b.WriteString(lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center,
			warningStyle.Render(model.IconWarning+" "+noEnvironmentsWarning)))
	} else {
		b.WriteString(m.renderRows(width, bodyHeight))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter(width))
	return b.String()
}

func (m AppModel) renderHeader(width int) string {
	title := titleStyle.Render(model.Title)
	version := versionStyle.Render(model.Version)

	gap := width - lipgloss.Width(title) - lipgloss.Width(version) - horizontalPad
	if gap < 1 {
		gap = 1
	}
	line := " " + title + strings.Repeat(" ", gap) + version
	rule := lipgloss.NewStyle().Foreground(colorRule).Render(strings.Repeat("─", width))
	return line + "\n" + rule
}

// renderRows draws the visible window of environment rows around the cursor.
func (m AppModel) renderRows(width, bodyHeight int) string {
	n := m.Environments.Len()
	visible := bodyHeight / rowHeight
	if visible < 1 {
		visible = 1
	}

	start, end := 0, n
	if n > visible {
		if m.State.Cursor >= visible/2 {
			start = m.State.Cursor - visible/2
		}
		if start+visible > n {
			start = n - visible
		}
		end = start + visible
	}

	rowWidth := width - horizontalPad*2
	if rowWidth < minimumRowSize {
		rowWidth = minimumRowSize
	}

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(i, rowWidth))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		PaddingLeft(horizontalPad).
		Height(bodyHeight).
		Render(body)
}

func (m AppModel) renderRow(i, width int) string {
	env := m.Environments.At(i)
	look := lookFor(i, m.State)

	marker := "  "
	if i == m.State.Cursor {
		marker = model.IconCursor + " "
	}
	label := marker + env.Name
	if i == m.State.Autoboot {
		label += " " + model.IconAutoboot
	}

	return lipgloss.NewStyle().
		Width(width-2). // borders
		Border(look.Border).
		BorderForeground(look.BorderColor).
		Foreground(look.TextColor).
		Render(label)
}

func (m AppModel) renderFooter(width int) string {
	rule := lipgloss.NewStyle().Foreground(colorRule).Render(strings.Repeat("─", width))
	if m.Environments.Empty() {
		return rule + "\n " + m.Help.ShortHelpView(m.emptyHelp())
	}
	return rule + "\n " + m.Help.View(m.Keys)
}

func (m AppModel) emptyHelp() []key.Binding {
	return []key.Binding{m.Keys.Quit}
}
