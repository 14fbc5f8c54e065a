package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-outpost/internal/storage"
)

// maxJournalRows is the number of expeditions loaded into the browser.
const maxJournalRows = 200

// JournalSource is the read side of the expedition journal.
type JournalSource interface {
	RecentExpeditions(limit int) ([]storage.Record, error)
	Stats() (*storage.Stats, error)
}

// JournalKeyMap defines the key bindings for the journal browser.
type JournalKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "close"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing past expeditions.
type JournalModel struct {
	records  []storage.Record
	stats    *storage.Stats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	quitting bool
}

// NewJournalModel loads the journal from src and builds the browser.
func NewJournalModel(src JournalSource, width, height int) JournalModel {
	m := JournalModel{
		keys:   DefaultJournalKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}

	m.records, m.loadErr = src.RecentExpeditions(maxJournalRows)
	if m.loadErr == nil {
		m.stats, m.loadErr = src.Stats()
	}

	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a table sized to the current window.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Started", Width: 16},
		{Title: "Site", Width: 18},
		{Title: "Time", Width: 8},
		{Title: "Steps", Width: 6},
		{Title: "Bumps", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // Title, totals, help and borders
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *JournalModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = table.Row{
			r.StartedAt.Local().Format("Jan 02 15:04:05"),
			fmt.Sprintf("seed=%d %dx%d", r.Params.Seed, r.Params.Cols(), r.Params.Rows()),
			r.Duration().Round(time.Second).String(),
			fmt.Sprintf("%d", r.Steps),
			fmt.Sprintf("%d", r.Bumps),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal browser.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal browser.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render("EXPEDITION JOURNAL")))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.renderContent())))
	b.WriteString("\n")

	if m.stats != nil && m.stats.Count > 0 {
		totals := fmt.Sprintf("%d expeditions  %d steps  %d bumps  %s out",
			m.stats.Count, m.stats.TotalSteps, m.stats.TotalBumps, m.stats.TotalDuration.Round(time.Second))
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, totals))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderContent renders the table, or a message when there is nothing to show.
func (m JournalModel) renderContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render(fmt.Sprintf("Could not read the journal:\n%v", m.loadErr))
	}
	if len(m.records) == 0 {
		return emptyStyle.Render("No expeditions recorded yet.\nSurvey a site and embark to start one!")
	}
	return m.table.View()
}

// RunJournal runs the journal browser until the player closes it.
func RunJournal(src JournalSource, width, height int) error {
	p := tea.NewProgram(
		NewJournalModel(src, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
