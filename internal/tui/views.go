package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// screenTitle returns the header label for a screen
func screenTitle(s watchlist.Screen) string {
	switch s {
	case watchlist.ScreenEdit:
		return "Edit"
	case watchlist.ScreenSearch:
		return "Search"
	default:
		return "Watch List"
	}
}

func (m Model) renderHeader() string {
	left := styles.AccentStyle.Bold(true).Render("marquee") +
		styles.DimStyle.Render(" › ") +
		styles.TitleStyle.Render(screenTitle(m.Screen))

	var badges []string
	badges = append(badges, styles.DimBadgeStyle.Render(fmt.Sprintf("%d saved", len(m.State.Saved))))
	if m.State.SelectedCount > 0 {
		badges = append(badges, styles.BadgeStyle.Render(fmt.Sprintf("%d selected", m.State.SelectedCount)))
	}
	right := strings.Join(badges, " ")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func (m Model) renderList() string {
	var b strings.Builder

	if m.Filtering || m.State.Filter != "" {
		b.WriteString(m.FilterInput.View())
	} else {
		b.WriteString(styles.DimStyle.Render("/ to filter"))
	}
	b.WriteString("\n")

	switch {
	case len(m.State.Saved) == 0:
		b.WriteString(styles.DimStyle.Render("Your watch list is empty. Press a to add a movie."))
	case m.List.Len() == 0:
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Nothing matches %q", m.State.Filter)))
	default:
		b.WriteString(m.List.View())
	}
	return b.String()
}

func (m Model) renderEdit() string {
	title := "Add movie"
	if m.Form.IsEditingSaved() {
		title = "Edit movie"
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(title))
	if target := m.Form.Target(); target != nil && target.IsFromCatalog() {
		b.WriteString(styles.DimStyle.Render("  " + target.ImdbID))
	}
	b.WriteString("\n\n")
	b.WriteString(m.Form.View())
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("ctrl+f looks the title up in the catalog"))
	return b.String()
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.SearchInput.View())
	b.WriteString("\n\n")

	switch {
	case m.State.Loading:
		b.WriteString(m.Spinner.View() + styles.DimStyle.Render(" Searching..."))
	case m.State.Error != "":
		b.WriteString(RenderError(m.State.Error, m.Width))
	case m.State.HasResults():
		list := m.Results.View()
		if movie, ok := m.Results.Selected(); ok && m.Width >= 90 {
			detailWidth := 30
			list = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", RenderDetails(movie, detailWidth))
		}
		b.WriteString(list)
	default:
		b.WriteString(styles.DimStyle.Render("Type a title and press enter"))
	}
	return b.String()
}

// RenderDetails renders the side panel for a highlighted search result
func RenderDetails(movie domain.Movie, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(wordWrap(movie.Title, width)))
	b.WriteString("\n")

	if movie.Year != "" {
		b.WriteString(styles.DimStyle.Render("Year: " + movie.Year))
		b.WriteString("\n")
	}
	if movie.Genre != "" {
		b.WriteString(styles.DimStyle.Render("Genre: " + wordWrap(movie.Genre, width-7)))
		b.WriteString("\n")
	}
	if movie.IsFromCatalog() {
		b.WriteString(styles.DimStyle.Render("IMDb: " + movie.ImdbID))
		b.WriteString("\n")
	}

	poster := "no poster"
	if movie.HasPoster() {
		poster = "poster available"
	}
	b.WriteString(styles.DimStyle.Render(poster))

	return styles.InactiveBorder.Width(width).Padding(0, 1).Render(b.String())
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"j/k", "move"},
		{"a", "add movie"},
		{"e/enter", "edit movie"},
		{"space", "toggle selection"},
		{"c", "clear selections"},
		{"d", "delete selected"},
		{"x", "remove movie"},
		{"o", "open IMDb page"},
		{"/", "filter list"},
		{"tab", "next field"},
		{"ctrl+s", "save"},
		{"ctrl+f", "search catalog"},
		{"ctrl+l", "clear results"},
		{"esc", "back"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(styles.HelpKeyStyle.Width(10).Render(r[0]))
		b.WriteString(styles.HelpDescStyle.Render(r[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("press any key to close"))
	return b.String()
}

func (m Model) renderFooter() string {
	status := " "
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			status = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			status = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}
	return " " + status + "\n " + m.renderHints()
}

func (m Model) renderHints() string {
	var hints [][2]string
	switch m.Screen {
	case watchlist.ScreenEdit:
		hints = [][2]string{{"tab", "next"}, {"ctrl+s", "save"}, {"ctrl+f", "search"}, {"esc", "back"}}
	case watchlist.ScreenSearch:
		hints = [][2]string{{"enter", "search/pick"}, {"↑/↓", "move"}, {"ctrl+l", "clear"}, {"esc", "back"}}
	default:
		hints = [][2]string{{"a", "add"}, {"space", "select"}, {"d", "delete"}, {"/", "filter"}, {"?", "help"}, {"q", "quit"}}
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, styles.HelpKeyStyle.Render(h[0])+" "+styles.HelpDescStyle.Render(h[1]))
	}
	return strings.Join(parts, "  ")
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := len([]rune(word))

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}

// RenderError renders an error message
func RenderError(msg string, width int) string {
	return styles.ErrorStyle.Render(wordWrap(msg, width-4))
}
