// Package tui is a full-screen terminal front end for a game session,
// built on bubbletea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/lawnchairsociety/castaway/internal/game"
)

const (
	Title           = "CASTAWAY"
	PlaceHolderText = "Type a command (help for the list)..."
	ExitHint        = "The game is over. Press Enter to leave."
)

type entryKind int

const (
	entryGame entryKind = iota
	entryPlayer
)

type entry struct {
	kind entryKind
	text string
}

var (
	storyPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2)

	statusPanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")). // sea blue
			Bold(true)

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // sand

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

// Model is the bubbletea model playing one session.
type Model struct {
	session    *game.Session
	transcript []entry
	story      viewport.Model
	status     viewport.Model
	input      textarea.Model
	ready      bool
	width      int
	height     int
}

// New returns a model showing the session's opening text.
func New(session *game.Session) Model {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = hintStyle.Render("> ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	story := viewport.New(50, 20)
	story.MouseWheelEnabled = true

	return Model{
		session:    session,
		transcript: []entry{{kind: entryGame, text: strings.TrimRight(session.Start(), "\n")}},
		story:      story,
		status:     viewport.New(24, 20),
		input:      ta,
	}
}

// Session returns the session being played.
func (m Model) Session() *game.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		storyWidth, statusWidth := m.panelWidths()

		m.story.Width = storyWidth - 2
		m.story.Height = m.height - 5
		m.status.Width = statusWidth
		m.status.Height = m.height - 2
		m.input.SetWidth(storyWidth - 4)
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.session.Finished() {
				return m, tea.Quit
			}
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			m.submit(line)
			return m, nil
		}
	}

	m.input, tiCmd = m.input.Update(msg)
	m.story, vpCmd = m.story.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// submit runs one command and appends the exchange to the transcript.
func (m *Model) submit(line string) {
	m.transcript = append(m.transcript, entry{kind: entryPlayer, text: line})
	if out := strings.TrimRight(m.session.Process(line), "\n"); out != "" {
		m.transcript = append(m.transcript, entry{kind: entryGame, text: out})
	}
	if m.session.Finished() {
		m.input.Blur()
		m.input.Placeholder = ExitHint
	}
	m.refresh()
}

func (m Model) panelWidths() (story, status int) {
	status = m.width / 4
	if status < 24 {
		status = 24
	}
	story = m.width - status
	if story < 20 {
		story = 20
	}
	return story, status
}

// refresh re-renders both panels for the current size.
func (m *Model) refresh() {
	m.story.SetContent(m.renderTranscript(m.story.Width - 2))
	m.story.GotoBottom()
	m.status.SetContent(m.renderStatus(m.status.Width))
}

func (m Model) renderTranscript(width int) string {
	if width < 10 {
		width = 10
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(Title) + "\n")
	for _, e := range m.transcript {
		switch e.kind {
		case entryPlayer:
			sb.WriteString(playerStyle.Render("> "+wordwrap.String(e.text, width-2)) + "\n")
		default:
			sb.WriteString(gameStyle.Render(wordwrap.String(e.text, width)) + "\n\n")
		}
	}
	if m.session.Finished() {
		sb.WriteString(hintStyle.Render(ExitHint) + "\n")
	}
	return sb.String()
}

func (m Model) renderStatus(width int) string {
	p := m.session.Player()
	var sb strings.Builder

	sb.WriteString(labelStyle.Render("Location") + "\n")
	sb.WriteString(wordwrap.String(p.CurrentRoom.Name, width) + "\n\n")

	sb.WriteString(labelStyle.Render("Carrying") + "\n")
	sb.WriteString(fmt.Sprintf("%.1f / %g kg\n", p.Inventory.Weight(), p.Capacity()))
	for _, name := range p.Inventory.Names() {
		sb.WriteString("• " + name + "\n")
	}
	sb.WriteString("\n")

	if rewards := p.Rewards(); len(rewards) > 0 {
		sb.WriteString(labelStyle.Render("Rewards") + "\n")
		for _, r := range rewards {
			sb.WriteString("• " + r + "\n")
		}
		sb.WriteString("\n")
	}

	if quests := m.session.Quests(); quests != nil {
		overview := quests.Overview()
		overview = strings.TrimPrefix(overview, "Quests:\n")
		sb.WriteString(labelStyle.Render("Quests") + "\n")
		sb.WriteString(wordwrap.String(overview, width) + "\n\n")
	}

	if m.session.Diagnostics().Enabled() {
		sb.WriteString(hintStyle.Render("debug on") + "\n")
	}
	return sb.String()
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Washing ashore..."
	}
	storyWidth, statusWidth := m.panelWidths()

	storyPanel := storyPanelStyle.Width(storyWidth).Height(m.height - 1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.story.View(),
			hintStyle.Render(strings.Repeat("─", storyWidth-4)),
			m.input.View(),
		),
	)
	statusPanel := statusPanelStyle.Width(statusWidth).Height(m.height - 1).Render(
		m.status.View(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, storyPanel, statusPanel)
}

// Run plays the session full screen until the player leaves.
func Run(session *game.Session) error {
	p := tea.NewProgram(New(session), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
