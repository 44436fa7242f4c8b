package components

import (
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// MovieList is a scrollable list of movies with a cursor
type MovieList struct {
	items      []domain.Movie
	cursor     int
	offset     int
	maxVisible int
	width      int
	showMarks  bool // Render selection marks (saved list only)
}

// NewMovieList creates a list. showMarks renders the selection column.
func NewMovieList(showMarks bool) MovieList {
	return MovieList{showMarks: showMarks, maxVisible: 10}
}

// SetItems replaces the items, keeping the cursor on the same entry when it survives
func (l *MovieList) SetItems(items []domain.Movie) {
	var currentID int64
	if cur, ok := l.Selected(); ok {
		currentID = cur.ID
	}

	l.items = items

	if currentID != 0 {
		for i, m := range items {
			if m.ID == currentID {
				l.cursor = i
				break
			}
		}
	}
	l.clamp()
}

// SetSize sets the rendering area
func (l *MovieList) SetSize(width, height int) {
	l.width = width
	l.maxVisible = height
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.ensureVisible()
}

// Len returns the number of items
func (l MovieList) Len() int {
	return len(l.items)
}

// Cursor returns the cursor index
func (l MovieList) Cursor() int {
	return l.cursor
}

// Selected returns the movie under the cursor
func (l MovieList) Selected() (domain.Movie, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return domain.Movie{}, false
	}
	return l.items[l.cursor], true
}

// MoveUp moves the cursor up by n
func (l *MovieList) MoveUp(n int) {
	l.cursor -= n
	l.clamp()
}

// MoveDown moves the cursor down by n
func (l *MovieList) MoveDown(n int) {
	l.cursor += n
	l.clamp()
}

// Top moves the cursor to the first item
func (l *MovieList) Top() {
	l.cursor = 0
	l.clamp()
}

// Bottom moves the cursor to the last item
func (l *MovieList) Bottom() {
	l.cursor = len(l.items) - 1
	l.clamp()
}

// PageSize returns the number of visible rows
func (l MovieList) PageSize() int {
	return l.maxVisible
}

func (l *MovieList) clamp() {
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

func (l *MovieList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the visible rows
func (l MovieList) View() string {
	if len(l.items) == 0 {
		return ""
	}

	end := l.offset + l.maxVisible
	if end > len(l.items) {
		end = len(l.items)
	}

	rows := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		rows = append(rows, l.renderRow(l.items[i], i == l.cursor))
	}
	return strings.Join(rows, "\n")
}

func (l MovieList) renderRow(m domain.Movie, focused bool) string {
	var parts []styles.RowPart

	if l.showMarks {
		mark := styles.UnselectedChar
		fg := styles.DimGray
		if m.Selected {
			mark = styles.SelectedChar
			fg = styles.Green
		}
		parts = append(parts, styles.RowPart{Text: mark + " ", Foreground: &fg})
	}

	titleWidth := l.width - 4 - len([]rune(m.Description())) - 3
	if titleWidth < 10 {
		titleWidth = 10
	}
	parts = append(parts, styles.RowPart{Text: styles.Truncate(m.Title, titleWidth)})

	if desc := m.Description(); desc != "" {
		dim := styles.DimGray
		parts = append(parts, styles.RowPart{Text: "  " + desc, Foreground: &dim})
	}

	return styles.RenderListRow(parts, focused, l.width)
}
