package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// ConfirmModal asks the user to confirm a bulk delete
type ConfirmModal struct {
	count int
}

// NewConfirmModal creates a new confirmation modal
func NewConfirmModal() ConfirmModal {
	return ConfirmModal{}
}

// SetCount sets the number of entries that would be deleted
func (m *ConfirmModal) SetCount(count int) {
	m.count = count
}

// Title returns the question shown to the user
func (m ConfirmModal) Title() string {
	if m.count == 1 {
		return "Delete 1 selected movie?"
	}
	return fmt.Sprintf("Delete %d selected movies?", m.count)
}

// View renders the modal
func (m ConfirmModal) View() string {
	const modalWidth = 36

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.White).
		Bold(true).
		Width(modalWidth).
		Background(styles.SlateDark)

	hintStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark)

	spacer := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark).
		Render("")

	hint := styles.HelpKeyStyle.Render("y") + styles.HelpDescStyle.Render(" delete  ") +
		styles.HelpKeyStyle.Render("n/esc") + styles.HelpDescStyle.Render(" cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.Title()),
		spacer,
		hintStyle.Render(hint),
	)

	return styles.ModalStyle.Render(content)
}
