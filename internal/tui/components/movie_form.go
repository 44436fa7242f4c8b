package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Form field order
const (
	FieldTitle = iota
	FieldYear
	FieldGenre
	FieldPoster
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Year", "Genre", "Poster"}

// MovieForm edits a single movie
type MovieForm struct {
	target *domain.Movie // Entry being edited, nil when adding
	inputs [fieldCount]textinput.Model
	focus  int
}

// NewMovieForm creates an empty form
func NewMovieForm() MovieForm {
	var f MovieForm
	limits := [fieldCount]int{120, 16, 60, 300}
	placeholders := [fieldCount]string{"Movie title", "1999", "Drama", "https://..."}

	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 40
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		f.inputs[i] = ti
	}
	return f
}

// Load fills the form from target, or clears it when target is nil
func (f *MovieForm) Load(target *domain.Movie) tea.Cmd {
	f.target = nil
	if target != nil {
		t := *target
		f.target = &t
	}

	var m domain.Movie
	if f.target != nil {
		m = *f.target
	}
	f.inputs[FieldTitle].SetValue(m.Title)
	f.inputs[FieldYear].SetValue(m.Year)
	f.inputs[FieldGenre].SetValue(m.Genre)
	f.inputs[FieldPoster].SetValue(m.PosterURL)

	return f.setFocus(FieldTitle)
}

// Target returns the entry being edited, nil when adding
func (f MovieForm) Target() *domain.Movie {
	return f.target
}

// IsEditingSaved reports whether the form edits a persisted entry
func (f MovieForm) IsEditingSaved() bool {
	return f.target != nil && f.target.IsSaved()
}

// Focused returns the index of the focused field
func (f MovieForm) Focused() int {
	return f.focus
}

// NextField moves focus forward, wrapping around
func (f *MovieForm) NextField() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

// PrevField moves focus backward, wrapping around
func (f *MovieForm) PrevField() tea.Cmd {
	return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *MovieForm) setFocus(field int) tea.Cmd {
	f.focus = field
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == field {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// Movie returns the edited entry. Identity, catalog id and selection are
// carried over from the target.
func (f MovieForm) Movie() domain.Movie {
	var m domain.Movie
	if f.target != nil {
		m = *f.target
	}
	m.Title = strings.TrimSpace(f.inputs[FieldTitle].Value())
	m.Year = strings.TrimSpace(f.inputs[FieldYear].Value())
	m.Genre = strings.TrimSpace(f.inputs[FieldGenre].Value())
	m.PosterURL = strings.TrimSpace(f.inputs[FieldPoster].Value())
	return m
}

// Valid reports whether the form can be saved
func (f MovieForm) Valid() bool {
	return strings.TrimSpace(f.inputs[FieldTitle].Value()) != ""
}

// Update forwards input to the focused field
func (f MovieForm) Update(msg tea.Msg) (MovieForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// View renders the form
func (f MovieForm) View() string {
	rows := make([]string, 0, fieldCount)
	for i := range f.inputs {
		label := styles.LabelStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = styles.FocusedLabelStyle.Render(fieldLabels[i])
		}
		rows = append(rows, label+" "+f.inputs[i].View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
