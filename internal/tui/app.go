package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// Layout constants
const (
	// Header line + blank line above the body
	HeaderHeight = 2
	// Footer: status line + help line
	FooterHeight = 2
)

// Model is the main Bubble Tea model for the application
type Model struct {
	session     Session
	opener      PageOpener
	states      <-chan watchlist.State
	unsubscribe func()

	// Latest store snapshot
	State watchlist.State

	// Screen follows navigation effects
	Screen watchlist.Screen

	// UI Components
	List        components.MovieList
	Results     components.MovieList
	Form        components.MovieForm
	Confirm     components.ConfirmModal
	FilterInput textinput.Model
	SearchInput textinput.Model
	Spinner     spinner.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int
	Filtering   bool
	ShowHelp    bool
	lastQuery   string
}

// NewModel creates a new application model. opener may be nil.
func NewModel(session Session, opener PageOpener) Model {
	states, unsubscribe := session.Subscribe()

	filter := textinput.New()
	filter.Prompt = "/"
	filter.PromptStyle = styles.FilterPromptStyle
	filter.Placeholder = "filter saved movies"
	filter.PlaceholderStyle = styles.DimStyle
	filter.CharLimit = 60

	search := textinput.New()
	search.Prompt = "Search: "
	search.PromptStyle = styles.FilterPromptStyle
	search.Placeholder = "movie title"
	search.PlaceholderStyle = styles.DimStyle
	search.CharLimit = 100

	return Model{
		session:     session,
		opener:      opener,
		states:      states,
		unsubscribe: unsubscribe,
		Screen:      watchlist.ScreenList,
		List:        components.NewMovieList(true),
		Results:     components.NewMovieList(false),
		Form:        components.NewMovieForm(),
		Confirm:     components.NewConfirmModal(),
		FilterInput: filter,
		SearchInput: search,
		Spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForStateCmd(m.states),
		WaitForEffectCmd(m.session.Effects()),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.updateLayout()
		return m, nil

	case StateMsg:
		m.applyState(msg.State)
		return m, WaitForStateCmd(m.states)

	case EffectMsg:
		cmd := m.applyEffect(msg.Effect)
		return m, tea.Batch(cmd, WaitForEffectCmd(m.session.Effects()))

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ErrMsg:
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		if msg.seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// Close releases the state subscription
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *Model) applyState(st watchlist.State) {
	m.State = st
	m.List.SetItems(st.Visible)
	m.Results.SetItems(st.SearchResults)
	m.Confirm.SetCount(st.SelectedCount)
}

func (m *Model) applyEffect(e watchlist.Effect) tea.Cmd {
	switch e.Kind {
	case watchlist.EffectShowError:
		return m.setStatus(e.Message, true)

	case watchlist.EffectNavigateToEdit:
		m.Screen = watchlist.Navigate(m.Screen, e.Kind)
		m.SearchInput.Blur()
		return m.Form.Load(e.Entry)

	case watchlist.EffectNavigateToSearch:
		m.Screen = watchlist.Navigate(m.Screen, e.Kind)
		return m.SearchInput.Focus()

	default:
		m.Screen = watchlist.Navigate(m.Screen, e.Kind)
		m.SearchInput.Blur()
		return nil
	}
}

func (m *Model) setStatus(message string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = message
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, statusDuration)
}

// dispatch sends an intent, surfacing a closed session in the status line
func (m *Model) dispatch(intent watchlist.Intent) tea.Cmd {
	if err := m.session.Dispatch(intent); err != nil {
		return m.setStatus(err.Error(), true)
	}
	return nil
}

func (m *Model) updateLayout() {
	bodyHeight := m.Height - HeaderHeight - FooterHeight - 2 // body padding
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	width := m.Width - 4
	if width < 20 {
		width = 20
	}
	// Filter bar and search input each take a line
	m.List.SetSize(width, bodyHeight-1)
	m.Results.SetSize(width, bodyHeight-2)
	m.FilterInput.Width = width - 2
	m.SearchInput.Width = width - 10
}

// === Key handling ===

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if m.State.DeleteDialogVisible {
		return m.handleConfirmKeys(msg)
	}

	switch m.Screen {
	case watchlist.ScreenEdit:
		return m.handleEditKeys(msg)
	case watchlist.ScreenSearch:
		return m.handleSearchKeys(msg)
	default:
		if m.Filtering {
			return m.handleFilterKeys(msg)
		}
		return m.handleListKeys(msg)
	}
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Confirm):
		return m, m.dispatch(watchlist.ConfirmDelete{})
	case key.Matches(msg, Keys.Deny):
		return m, m.dispatch(watchlist.DismissDeleteDialog{})
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.List.MoveUp(1)
	case key.Matches(msg, Keys.Down):
		m.List.MoveDown(1)
	case key.Matches(msg, Keys.PageUp):
		m.List.MoveUp(m.List.PageSize())
	case key.Matches(msg, Keys.PageDown):
		m.List.MoveDown(m.List.PageSize())
	case key.Matches(msg, Keys.Home):
		m.List.Top()
	case key.Matches(msg, Keys.End):
		m.List.Bottom()

	case key.Matches(msg, Keys.Add):
		return m, m.dispatch(watchlist.RequestAdd{})

	case key.Matches(msg, Keys.Edit):
		if movie, ok := m.List.Selected(); ok {
			return m, m.dispatch(watchlist.RequestEdit{Entry: movie})
		}

	case key.Matches(msg, Keys.ToggleSelection):
		if movie, ok := m.List.Selected(); ok {
			return m, m.dispatch(watchlist.ToggleSelection{Entry: movie})
		}

	case key.Matches(msg, Keys.ClearSelections):
		if m.State.SelectedCount > 0 {
			return m, m.dispatch(watchlist.ClearSelections{})
		}

	case key.Matches(msg, Keys.DeleteSelected):
		if m.State.SelectedCount == 0 {
			return m, m.setStatus("Select movies with space first", false)
		}
		return m, m.dispatch(watchlist.RequestDelete{})

	case key.Matches(msg, Keys.Remove):
		if movie, ok := m.List.Selected(); ok {
			return m, m.dispatch(watchlist.RemoveEntry{Entry: movie})
		}

	case key.Matches(msg, Keys.Filter):
		m.Filtering = true
		return m, m.FilterInput.Focus()

	case key.Matches(msg, Keys.OpenPage):
		movie, ok := m.List.Selected()
		if !ok || m.opener == nil {
			return m, nil
		}
		if !movie.IsFromCatalog() {
			return m, m.setStatus("Manual entries have no catalog page", false)
		}
		return m, OpenPageCmd(m.opener, movie)

	case key.Matches(msg, Keys.Back):
		if m.State.Filter != "" {
			m.FilterInput.SetValue("")
			return m, m.dispatch(watchlist.FilterSaved{Query: ""})
		}
		return m, m.dispatch(watchlist.NavigateBack{})
	}

	return m, nil
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Filtering = false
		m.FilterInput.Blur()
		m.FilterInput.SetValue("")
		return m, m.dispatch(watchlist.FilterSaved{Query: ""})
	case tea.KeyEnter, tea.KeyUp, tea.KeyDown:
		// Keep the filter, return to list navigation
		m.Filtering = false
		m.FilterInput.Blur()
		return m, nil
	}

	before := m.FilterInput.Value()
	var cmd tea.Cmd
	m.FilterInput, cmd = m.FilterInput.Update(msg)
	if value := m.FilterInput.Value(); value != before {
		return m, tea.Batch(cmd, m.dispatch(watchlist.FilterSaved{Query: value}))
	}
	return m, cmd
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		return m, m.dispatch(watchlist.NavigateBack{})

	case key.Matches(msg, Keys.SearchScreen):
		if title := m.Form.Movie().Title; title != "" && m.SearchInput.Value() == "" {
			m.SearchInput.SetValue(title)
		}
		return m, m.dispatch(watchlist.RequestSearchScreen{})

	case key.Matches(msg, Keys.NextField):
		return m, m.Form.NextField()

	case key.Matches(msg, Keys.PrevField):
		return m, m.Form.PrevField()

	case key.Matches(msg, Keys.Save):
		return m.saveForm()

	case msg.Type == tea.KeyEnter:
		if m.Form.Focused() == components.FieldPoster {
			return m.saveForm()
		}
		return m, m.Form.NextField()
	}

	var cmd tea.Cmd
	m.Form, cmd = m.Form.Update(msg)
	return m, cmd
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	if !m.Form.Valid() {
		return m, m.setStatus("Title is required", true)
	}
	movie := m.Form.Movie()
	if m.Form.IsEditingSaved() {
		return m, m.dispatch(watchlist.UpdateEntry{Entry: movie})
	}
	return m, m.dispatch(watchlist.AddEntry{Entry: movie})
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		return m, m.dispatch(watchlist.NavigateBack{})

	case key.Matches(msg, Keys.ClearResults):
		m.lastQuery = ""
		return m, m.dispatch(watchlist.ClearSearchResults{})

	case msg.Type == tea.KeyUp:
		m.Results.MoveUp(1)
		return m, nil

	case msg.Type == tea.KeyDown:
		m.Results.MoveDown(1)
		return m, nil

	case msg.Type == tea.KeyEnter:
		query := m.SearchInput.Value()
		// A repeated enter on the same query picks the highlighted result
		if query == m.lastQuery && m.State.HasResults() && !m.State.Loading {
			if movie, ok := m.Results.Selected(); ok {
				return m, m.dispatch(watchlist.RequestEdit{Entry: movie})
			}
		}
		if query == "" {
			return m, nil
		}
		m.lastQuery = query
		m.Results.Top()
		return m, m.dispatch(watchlist.Search{Query: query})
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	return m, cmd
}

// View renders the application
func (m Model) View() string {
	header := m.renderHeader()

	var body string
	switch m.Screen {
	case watchlist.ScreenEdit:
		body = m.renderEdit()
	case watchlist.ScreenSearch:
		body = m.renderSearch()
	default:
		body = m.renderList()
	}
	if m.ShowHelp {
		body = m.renderHelp()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		header,
		styles.BodyStyle.Render(body),
		m.renderFooter(),
	)

	if m.State.DeleteDialogVisible && m.Width > 0 && m.Height > 0 {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.Confirm.View())
	}
	return view
}
