package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scottopell/rqbit/internal/api"
	"github.com/scottopell/rqbit/internal/config"
)

type Screen interface {
	tea.Model
	Title() string
}

// Overlay is a small modal box rendered over the current screen. While an
// overlay is up it receives all input.
type Overlay interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(w, h int) string
}

type App struct {
	stack    []Screen
	overlay  Overlay
	cfg      *config.Config
	cfgPath  string
	client   *api.Client
	keys     KeyMap
	help     help.Model
	showHelp bool
	width    int
	height   int

	errMsg    string
	statusMsg string
}

func NewApp(cfg *config.Config, cfgPath string, client *api.Client) *App {
	h := help.New()
	h.ShowAll = false

	app := &App{
		cfg:     cfg,
		cfgPath: cfgPath,
		client:  client,
		keys:    DefaultKeyMap(),
		help:    h,
		width:   80,
		height:  24,
	}

	app.stack = []Screen{NewTorrentsScreen(app)}
	return app
}

func (a *App) Init() tea.Cmd {
	if len(a.stack) > 0 {
		return a.stack[len(a.stack)-1].Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, a.forward(msg)

	case tea.KeyMsg:
		if a.overlay != nil {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			return a, a.overlay.Update(msg)
		}

		switch {
		case msg.String() == "ctrl+c":
			return a, tea.Quit
		case msg.String() == "q" && len(a.stack) <= 1:
			return a, tea.Quit
		case msg.String() == "?" && len(a.stack) <= 1:
			a.showHelp = !a.showHelp
			return a, nil
		}

	case tea.MouseMsg:
		if a.overlay != nil {
			return a, nil
		}
		// Content starts below the title bar.
		msg.Y--
		return a, a.forward(msg)

	case GoBackMsg:
		return a, a.popScreen()

	case OpenSourcePromptMsg:
		a.overlay = NewSourceModel(a)
		return a, a.overlay.Init()

	case OpenSettingsMsg:
		a.overlay = NewSettingsModel(a)
		return a, a.overlay.Init()

	case CancelOverlayMsg:
		a.overlay = nil
		return a, nil

	case SourceSubmittedMsg:
		a.overlay = nil
		return a, a.pushScreen(NewAddScreen(a, msg.Source))

	case ConfigUpdatedMsg:
		a.cfg = msg.Config
		a.overlay = nil
		return a, nil

	case TorrentAddedMsg:
		cmd := a.popScreen()
		return a, tea.Batch(cmd, func() tea.Msg { return RefreshTorrentsMsg{} })

	case ErrorMsg:
		a.errMsg = msg.Err.Error()
		return a, a.clearAfter(5*time.Second, ClearErrorMsg{})

	case ClearErrorMsg:
		a.errMsg = ""
		return a, nil

	case StatusMsg:
		a.statusMsg = msg.Text
		return a, a.clearAfter(3*time.Second, ClearStatusMsg{})

	case ClearStatusMsg:
		a.statusMsg = ""
		return a, nil
	}

	if a.overlay != nil {
		return a, a.overlay.Update(msg)
	}
	return a, a.forward(msg)
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	if len(a.stack) == 0 {
		return nil
	}
	top := a.stack[len(a.stack)-1]
	updated, cmd := top.Update(msg)
	a.stack[len(a.stack)-1] = updated.(Screen)
	return cmd
}

func (a *App) View() string {
	if a.width == 0 {
		return ""
	}

	var sections []string

	breadcrumb := a.buildBreadcrumb()
	sections = append(sections, StyleTitle.Width(a.width).Render(breadcrumb))

	contentHeight := a.height - 2 // title + status bar
	if a.showHelp {
		contentHeight -= 4
	}

	if a.overlay != nil {
		sections = append(sections, a.overlay.View(a.width, contentHeight))
	} else if len(a.stack) > 0 {
		content := a.stack[len(a.stack)-1].View()
		sections = append(sections, lipgloss.NewStyle().
			Height(contentHeight).
			MaxHeight(contentHeight).
			Width(a.width).
			Render(content))
	}

	if a.showHelp {
		a.help.ShowAll = true
		sections = append(sections, StyleHelp.Render(a.help.View(a.keys)))
	}

	sections = append(sections, a.buildStatusBar())

	return strings.Join(sections, "\n")
}

func (a *App) pushScreen(s Screen) tea.Cmd {
	a.stack = append(a.stack, s)
	return s.Init()
}

func (a *App) popScreen() tea.Cmd {
	if len(a.stack) <= 1 {
		return tea.Quit
	}
	a.stack = a.stack[:len(a.stack)-1]
	return nil
}

func (a *App) buildBreadcrumb() string {
	parts := []string{"rqbit"}
	for _, s := range a.stack {
		parts = append(parts, s.Title())
	}
	return strings.Join(parts, " > ")
}

func (a *App) buildStatusBar() string {
	if a.errMsg != "" {
		return StyleError.Width(a.width).Render(a.errMsg)
	}
	if a.statusMsg != "" {
		return StyleStatus.Width(a.width).Render(a.statusMsg)
	}

	hints := []string{"?:help"}
	if len(a.stack) > 1 {
		hints = append(hints, "esc:back")
	}
	hints = append(hints, "q:quit")
	return StyleStatusBar.Width(a.width).Render(strings.Join(hints, "  "))
}

func (a *App) clearAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
