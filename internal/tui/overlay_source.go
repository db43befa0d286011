package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SourceModel prompts for what to add: a magnet link, an HTTP URL, or a
// path to a local .torrent file.
type SourceModel struct {
	app   *App
	input textinput.Model
}

func NewSourceModel(app *App) *SourceModel {
	ti := textinput.New()
	ti.Placeholder = "magnet:?xt=... or /path/to/file.torrent"
	ti.Prompt = "Source: "
	ti.Width = 60
	ti.Focus()

	return &SourceModel{
		app:   app,
		input: ti,
	}
}

func (m *SourceModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SourceModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return func() tea.Msg { return CancelOverlayMsg{} }

		case "enter":
			source := strings.TrimSpace(m.input.Value())
			if source == "" {
				return func() tea.Msg {
					return ErrorMsg{Err: fmt.Errorf("torrent source cannot be empty")}
				}
			}
			return func() tea.Msg { return SourceSubmittedMsg{Source: source} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *SourceModel) View(w, h int) string {
	const dialogW = 70

	var b strings.Builder
	b.WriteString(StylePanelTitleFocused.Render("Add Torrent"))
	b.WriteString("\n\n")
	b.WriteString("  " + m.input.View())
	b.WriteString("\n\n")
	b.WriteString("  enter:preview  esc:cancel")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMagenta).
		Padding(1, 2).
		Width(dialogW).
		Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}
