package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/scottopell/rqbit/internal/api"
)

// At most this many previously-seen peers are handed to the daemon on add.
const maxInitialPeers = 32

type addFocus int

const (
	focusFiles addFocus = iota
	focusDest
)

type uploadError struct {
	Text    string
	Details string
}

// AddScreen is the add-torrent confirmation dialog: pick files, confirm a
// destination, then commit the add. Pushed by the source prompt with the
// listing still loading.
type AddScreen struct {
	app    *App
	source string

	loading    bool
	listing    *api.Listing
	listingErr error

	files *FilePanel
	dest  *DirSelector
	focus addFocus

	unpopular bool
	uploading bool
	uploadErr *uploadError

	spinner spinner.Model
	width   int
	height  int
	destTop int // content row of the destination input, set during View
}

func NewAddScreen(app *App, source string) *AddScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &AddScreen{
		app:     app,
		source:  source,
		loading: true,
		files:   NewFilePanel(app.keys),
		dest:    NewDirSelector(app.client.DirPreview),
		spinner: sp,
		width:   app.width,
		height:  app.height,
	}
}

func (s *AddScreen) Title() string { return "add" }

func (s *AddScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.loadListing())
}

func (s *AddScreen) loadListing() tea.Cmd {
	client := s.app.client
	source := s.source

	return func() tea.Msg {
		listing, err := client.Preview(context.Background(), source)
		if err != nil {
			return ListingErrorMsg{Err: err}
		}
		return ListingLoadedMsg{Source: source, Listing: listing}
	}
}

func (s *AddScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case ListingLoadedMsg:
		return s, s.setListing(msg.Listing)

	case ListingErrorMsg:
		s.loading = false
		s.listingErr = msg.Err
		return s, nil

	case UploadDoneMsg:
		s.uploading = false
		if msg.Err != nil {
			log.Warn().Err(msg.Err).Str("source", s.source).Msg("add torrent failed")
			s.uploadErr = &uploadError{
				Text:    "Failed to add torrent",
				Details: msg.Err.Error(),
			}
			return s, nil
		}
		return s, func() tea.Msg { return TorrentAddedMsg{} }

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.MouseMsg:
		return s, s.handleMouse(msg)

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	return s, s.dest.Update(msg)
}

// setListing installs a fresh listing: all files selected, destination
// reset to the listing's prior output folder (or the configured default).
func (s *AddScreen) setListing(listing *api.Listing) tea.Cmd {
	s.loading = false
	s.listing = listing
	s.files.SetFiles(listing.Files)

	folder := listing.OutputFolder
	if folder == "" {
		folder = s.app.cfg.Defaults.OutputDir
	}
	return s.dest.SetValue(folder)
}

func (s *AddScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Unconsumed keys still carry the selector's cmd (cursor movement).
	var destCmd tea.Cmd
	if s.focus == focusDest {
		cmd, consumed := s.dest.HandleKey(msg)
		if consumed {
			return cmd
		}
		destCmd = cmd
	}

	keys := s.app.keys
	switch {
	case key.Matches(msg, keys.Back):
		return tea.Batch(destCmd, s.cancel())

	case key.Matches(msg, keys.NextPanel):
		return tea.Batch(destCmd, s.cycleFocus())

	case key.Matches(msg, keys.Unpopular):
		s.unpopular = !s.unpopular
		return destCmd

	case key.Matches(msg, keys.Submit):
		if s.canUpload() {
			return tea.Batch(destCmd, s.startUpload())
		}
		return destCmd
	}

	if s.focus == focusFiles && s.listing != nil {
		s.files.HandleKey(msg)
	}
	return destCmd
}

func (s *AddScreen) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if !s.dest.DropdownOpen() {
		return nil
	}

	// Dropdown rows render directly under the destination input.
	row := msg.Y - s.destTop - 1
	if row < 0 || row >= s.dest.DropdownRows() {
		return nil
	}

	s.focus = focusDest
	return s.dest.Click(row)
}

func (s *AddScreen) cycleFocus() tea.Cmd {
	if s.focus == focusFiles {
		s.focus = focusDest
		return s.dest.Focus()
	}
	s.focus = focusFiles
	s.dest.Blur()
	return nil
}

// cancel resets transient dialog state and dismisses.
func (s *AddScreen) cancel() tea.Cmd {
	s.files.SelectAll()
	s.uploadErr = nil
	s.uploading = false
	return func() tea.Msg { return GoBackMsg{} }
}

func (s *AddScreen) canUpload() bool {
	return !s.loading &&
		!s.uploading &&
		s.listing != nil &&
		s.files.SelectedCount() > 0 &&
		s.dest.Valid()
}

func (s *AddScreen) startUpload() tea.Cmd {
	if s.listing == nil {
		return nil
	}

	s.uploading = true
	s.uploadErr = nil

	opts := s.buildOptions()
	client := s.app.client
	source := s.source

	return func() tea.Msg {
		return UploadDoneMsg{Err: client.Upload(context.Background(), source, opts)}
	}
}

// buildOptions constructs the upload request; a fresh value every attempt.
func (s *AddScreen) buildOptions() api.UploadOptions {
	opts := api.UploadOptions{
		Overwrite:    true,
		OnlyFiles:    s.files.SelectedIndices(),
		OutputFolder: s.dest.Value(),
	}

	if peers := s.listing.SeenPeers; len(peers) > 0 {
		if len(peers) > maxInitialPeers {
			peers = peers[:maxInitialPeers]
		}
		opts.InitialPeers = peers
	}

	if s.unpopular {
		opts.PeerOpts = &api.PeerOpts{
			ConnectTimeout:   s.app.cfg.Unpopular.ConnectTimeoutSeconds,
			ReadWriteTimeout: s.app.cfg.Unpopular.ReadWriteTimeoutSeconds,
		}
	}
	return opts
}

func (s *AddScreen) View() string {
	if s.loading {
		return fmt.Sprintf("\n  %s Fetching torrent metadata...", s.spinner.View())
	}

	if s.listingErr != nil {
		var b strings.Builder
		b.WriteString("\n  " + StyleError.Render("Could not read torrent") + "\n\n")
		b.WriteString("  " + s.listingErr.Error() + "\n\n")
		b.WriteString("  " + StyleSeparator.Render("esc:back"))
		return b.String()
	}

	var b strings.Builder

	b.WriteString("  " + StyleSelected.Render(s.listing.Name) + "\n")
	b.WriteString("\n")

	filesTitle := StylePanelTitle
	if s.focus == focusFiles {
		filesTitle = StylePanelTitleFocused
	}
	b.WriteString(filesTitle.Render("Files") + "\n")

	fileH := s.height - 14
	if fileH < 3 {
		fileH = 3
	}
	b.WriteString(s.files.View(s.width, fileH) + "\n")
	b.WriteString("\n")

	// Rows so far: name, blank, files title, fileH panel rows, blank.
	s.destTop = 5 + fileH

	destTitle := StylePanelTitle
	if s.focus == focusDest {
		destTitle = StylePanelTitleFocused
	}
	b.WriteString(destTitle.Render("Destination") + "\n")
	b.WriteString(s.dest.View(s.width) + "\n")

	toggle := "[ ]"
	if s.unpopular {
		toggle = "[x]"
	}
	b.WriteString(fmt.Sprintf("  %s unpopular torrent (relaxed peer timeouts)\n", toggle))
	b.WriteString("\n")

	if s.uploadErr != nil {
		b.WriteString("  " + StyleError.Render(s.uploadErr.Text) + "\n")
		b.WriteString("  " + StyleSeparator.Render(s.uploadErr.Details) + "\n\n")
	}

	if s.uploading {
		b.WriteString(fmt.Sprintf("  %s Adding torrent...\n", s.spinner.View()))
	} else if s.canUpload() {
		b.WriteString("  " + StyleSeparator.Render("ctrl+s:start download  tab:switch panel  ctrl+p:unpopular  esc:cancel"))
	} else {
		b.WriteString("  " + StyleSeparator.Render("select at least one file and a valid destination"))
	}

	return lipgloss.NewStyle().Width(s.width).Render(b.String())
}
