package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scottopell/rqbit/internal/config"
)

const (
	settingsInputURL = iota
	settingsInputOutputDir
	settingsInputCount
)

type SettingsModel struct {
	app      *App
	inputs   []textinput.Model
	focusIdx int
}

func NewSettingsModel(app *App) *SettingsModel {
	m := &SettingsModel{app: app}
	m.inputs = make([]textinput.Model, settingsInputCount)

	urlInput := textinput.New()
	urlInput.Prompt = "Daemon URL: "
	urlInput.Placeholder = "http://127.0.0.1:3030"
	urlInput.Width = 40
	urlInput.SetValue(app.cfg.Server.URL)
	urlInput.Focus()
	m.inputs[settingsInputURL] = urlInput

	dirInput := textinput.New()
	dirInput.Prompt = "Default output dir: "
	dirInput.Placeholder = "~/downloads"
	dirInput.Width = 40
	dirInput.SetValue(app.cfg.Defaults.OutputDir)
	m.inputs[settingsInputOutputDir] = dirInput

	return m
}

func (m *SettingsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SettingsModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return func() tea.Msg { return CancelOverlayMsg{} }

		case "tab", "down":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % settingsInputCount
			m.inputs[m.focusIdx].Focus()
			return nil

		case "shift+tab", "up":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx - 1 + settingsInputCount) % settingsInputCount
			m.inputs[m.focusIdx].Focus()
			return nil

		case "enter":
			return m.save()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return cmd
}

func (m *SettingsModel) save() tea.Cmd {
	serverURL := strings.TrimSpace(m.inputs[settingsInputURL].Value())
	if u, err := url.Parse(serverURL); err != nil || u.Scheme == "" || u.Host == "" {
		return func() tea.Msg {
			return ErrorMsg{Err: fmt.Errorf("%q is not a valid daemon URL", serverURL)}
		}
	}

	m.app.cfg.Server.URL = serverURL
	m.app.cfg.Defaults.OutputDir = strings.TrimSpace(m.inputs[settingsInputOutputDir].Value())

	if err := config.Save(m.app.cfg, m.app.cfgPath); err != nil {
		return func() tea.Msg { return ErrorMsg{Err: err} }
	}

	cfg := m.app.cfg
	return func() tea.Msg { return ConfigUpdatedMsg{Config: cfg} }
}

func (m *SettingsModel) View(w, h int) string {
	var b strings.Builder
	b.WriteString(StylePanelTitleFocused.Render("Settings"))
	b.WriteString("\n\n")
	for i, input := range m.inputs {
		if i == m.focusIdx {
			b.WriteString("  > ")
		} else {
			b.WriteString("    ")
		}
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n  enter:save  esc:cancel")
	b.WriteString("\n  " + StyleSeparator.Render("daemon URL change takes effect on restart"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMagenta).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}
