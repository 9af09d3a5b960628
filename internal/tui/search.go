package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/buscacep/internal/address"
	"github.com/muurk/buscacep/internal/lookup"
	"github.com/muurk/buscacep/internal/viacep"
)

// Messages for async operations
type lookupResultMsg struct {
	result lookup.Result
}

// searchKeyMap defines key bindings for the search screen
type searchKeyMap struct {
	Search key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k searchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Clear, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k searchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Clear, k.Quit},
	}
}

// loadingKeyMap defines key bindings while a lookup is in flight
type loadingKeyMap struct {
	Clear key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k loadingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k loadingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Clear, k.Quit},
	}
}

// SearchModel is the postal-code search screen. It renders the session's
// state and forwards every edit and search to it.
type SearchModel struct {
	Session *lookup.Session

	// UI state
	Width       int
	Height      int
	Input       textinput.Model
	Spinner     spinner.Model
	Help        help.Model
	Keys        searchKeyMap
	LoadingKeys loadingKeyMap

	ctx context.Context
}

// NewSearchModel creates the search screen for session. Lookups started
// from the screen are bound to ctx.
func NewSearchModel(ctx context.Context, session *lookup.Session) SearchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	// No CharLimit: the session decides which edits are accepted.
	input := textinput.New()
	input.Placeholder = "01310930"
	input.Prompt = ""
	input.Width = lookup.MaxPostalCodeLength + 2
	input.Focus()

	keys := searchKeyMap{
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}

	return SearchModel{
		Session: session,
		Input:   input,
		Spinner: s,
		Help:    help.New(),
		Keys:    keys,
		LoadingKeys: loadingKeyMap{
			Clear: keys.Clear,
			Quit:  keys.Quit,
		},
		ctx: ctx,
	}
}

// Init initializes the search model
func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case lookupResultMsg:
		m.Session.Apply(msg.result)
		return m, nil

	case spinner.TickMsg:
		// Let the spinner stop once nothing is loading
		if m.Session.State().Phase != lookup.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// updateKeys handles keyboard input
func (m SearchModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Session.Close()
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Search):
		task, ok := m.Session.Search(m.ctx)
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.Spinner.Tick, waitForLookup(task))

	case key.Matches(msg, m.Keys.Clear):
		m.Input.SetValue(m.Session.Edit(""))
		return m, nil
	}

	return m.edit(msg)
}

// edit lets the text input interpret the key, then offers the resulting
// text to the session. A rejected edit leaves the input as it was.
func (m SearchModel) edit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.Input.Value()

	next, cmd := m.Input.Update(msg)
	candidate := next.Value()
	if candidate == before {
		m.Input = next
		return m, cmd
	}

	if m.Session.Edit(candidate) != candidate {
		return m, nil
	}
	m.Input = next
	return m, cmd
}

// waitForLookup is a command that delivers a task's result
func waitForLookup(task *lookup.Task) tea.Cmd {
	return func() tea.Msg {
		<-task.Done()
		res, _ := task.Result()
		return lookupResultMsg{result: res}
	}
}

// View renders the search screen
func (m SearchModel) View() string {
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth + 12
	}

	var helpText string
	if m.Session.State().Phase == lookup.PhaseLoading {
		helpText = m.Help.View(m.LoadingKeys)
	} else {
		helpText = m.Help.View(m.Keys)
	}

	return RenderApplicationContainer(m.buildContent(width), helpText, width, m.Height)
}

func (m SearchModel) buildContent(width int) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Search by CEP"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Type up to 8 digits and press enter"))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("CEP: "))
	b.WriteString(m.Input.View())
	b.WriteString("\n\n")

	if s := m.renderState(width); s != "" {
		b.WriteString(s)
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderHistory())
	return b.String()
}

func (m SearchModel) renderState(width int) string {
	st := m.Session.State()

	switch st.Phase {
	case lookup.PhaseLoading:
		return LabelStyle.Render(fmt.Sprintf("%s Looking up %s...",
			m.Spinner.View(), address.FormatPostalCode(st.PostalCode)))

	case lookup.PhaseFound:
		return cardStyle(SecondaryColor, width).Render(renderRecord(st.Record))

	case lookup.PhaseNotFound:
		title := lipgloss.NewStyle().Foreground(WarningColor).Bold(true).
			Render("⚠ No address found for " + address.FormatPostalCode(st.PostalCode))
		return cardStyle(WarningColor, width).Render(title)

	case lookup.PhaseFailed:
		return cardStyle(ErrorColor, width).Render(renderFailure(st))

	default:
		return ""
	}
}

// renderRecord renders the fields of a found record
func renderRecord(r address.Record) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true).Render("✓ Address found"),
		"",
	}
	for _, f := range r.Fields() {
		lines = append(lines, FieldKeyStyle.Render(f[0]+":")+" "+FieldValueStyle.Render(f[1]))
	}
	return strings.Join(lines, "\n")
}

// renderFailure renders a failed lookup with troubleshooting hints
func renderFailure(st lookup.State) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(ErrorColor).Bold(true).
			Render("✗ Lookup failed for " + address.FormatPostalCode(st.PostalCode)),
		"",
		viacep.ShortMessage(st.Reason),
	}

	if hints := viacep.TroubleshootingHint(st.Reason); len(hints) > 0 {
		lines = append(lines, "", "Troubleshooting:")
		for _, h := range hints {
			lines = append(lines, "  • "+h)
		}
	}

	lines = append(lines, "", "Press enter to try again.")
	return strings.Join(lines, "\n")
}

func (m SearchModel) renderHistory() string {
	records := m.Session.History()
	if len(records) == 0 {
		return ""
	}

	lines := []string{SectionStyle.Render("Recent")}
	for _, r := range records {
		lines = append(lines, HistoryItemStyle.Render(r.Summary()))
	}
	return strings.Join(lines, "\n")
}

// Run starts the search screen on the terminal and blocks until the user
// quits or ctx is canceled.
func Run(ctx context.Context, session *lookup.Session) error {
	defer session.Close()

	p := tea.NewProgram(
		NewSearchModel(ctx, session),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
