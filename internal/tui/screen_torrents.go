package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/scottopell/rqbit/internal/api"
)

type torrentItem struct {
	stats api.TorrentStats
}

func (i torrentItem) Title() string       { return i.stats.Name }
func (i torrentItem) FilterValue() string { return i.stats.Name }
func (i torrentItem) Description() string {
	done := humanize.Bytes(i.stats.Downloaded)
	total := humanize.Bytes(i.stats.TotalBytes)
	switch {
	case i.stats.Error != "":
		return fmt.Sprintf("error: %s", i.stats.Error)
	case i.stats.Finished:
		return fmt.Sprintf("%s  [done, %s up]", total, humanize.Bytes(i.stats.Uploaded))
	default:
		return fmt.Sprintf("%s / %s  %s/s  [%s]", done, total,
			humanize.Bytes(uint64(i.stats.DownloadSpeed)), i.stats.State)
	}
}

type torrentDelegate struct{}

func (d torrentDelegate) Height() int                             { return 2 }
func (d torrentDelegate) Spacing() int                            { return 0 }
func (d torrentDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d torrentDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(torrentItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	var style lipgloss.Style
	switch {
	case isSelected:
		style = StyleSelected
	case item.stats.State == "live" && !item.stats.Finished:
		style = StyleTorrentLive
	default:
		style = StyleTorrentIdle
	}

	cursor := "  "
	if isSelected {
		cursor = "> "
	}

	title := style.Render(item.stats.Name)
	desc := style.Copy().Faint(true).Render(item.Description())

	fmt.Fprintf(w, "%s%s\n%s%s", cursor, title, "  ", desc)
}

type TorrentsScreen struct {
	list    list.Model
	app     *App
	loading bool
}

func NewTorrentsScreen(app *App) *TorrentsScreen {
	l := list.New(nil, torrentDelegate{}, app.width, app.height-4)
	l.Title = "Torrents"
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return &TorrentsScreen{
		list:    l,
		app:     app,
		loading: true,
	}
}

func (s *TorrentsScreen) Title() string { return "torrents" }

func (s *TorrentsScreen) Init() tea.Cmd {
	return s.loadTorrents()
}

func (s *TorrentsScreen) loadTorrents() tea.Cmd {
	client := s.app.client
	return func() tea.Msg {
		torrents, err := client.ListTorrents(context.Background())
		if err != nil {
			return TorrentsLoadErrorMsg{Err: err}
		}
		return TorrentsLoadedMsg{Torrents: torrents}
	}
}

func (s *TorrentsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.list.SetSize(msg.Width, msg.Height-4)
		return s, nil

	case TorrentsLoadedMsg:
		s.loading = false
		items := make([]list.Item, len(msg.Torrents))
		for i, t := range msg.Torrents {
			items[i] = torrentItem{stats: t}
		}
		s.list.SetItems(items)
		return s, nil

	case TorrentsLoadErrorMsg:
		s.loading = false
		return s, func() tea.Msg { return ErrorMsg{Err: msg.Err} }

	case RefreshTorrentsMsg:
		s.loading = true
		return s, s.loadTorrents()

	case tea.KeyMsg:
		if s.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, s.app.keys.Add):
			return s, func() tea.Msg { return OpenSourcePromptMsg{} }

		case key.Matches(msg, s.app.keys.Refresh):
			s.loading = true
			return s, s.loadTorrents()

		case key.Matches(msg, s.app.keys.Settings):
			return s, func() tea.Msg { return OpenSettingsMsg{} }

		case key.Matches(msg, s.app.keys.CopyHash):
			return s, s.copyInfoHash()
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *TorrentsScreen) copyInfoHash() tea.Cmd {
	item, ok := s.list.SelectedItem().(torrentItem)
	if !ok {
		return nil
	}

	hash := item.stats.InfoHash
	return func() tea.Msg {
		if err := clipboard.WriteAll(hash); err != nil {
			return ErrorMsg{Err: fmt.Errorf("copying info hash: %w", err)}
		}
		return StatusMsg{Text: "Copied " + hash}
	}
}

func (s *TorrentsScreen) View() string {
	if s.loading {
		return "  Loading torrents..."
	}
	if len(s.list.Items()) == 0 {
		return "  No torrents. Press a to add one."
	}
	return s.list.View()
}
