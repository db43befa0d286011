package tui

import (
	"github.com/scottopell/rqbit/internal/api"
	"github.com/scottopell/rqbit/internal/config"
)

// Navigation messages
type GoBackMsg struct{}

// Torrent list messages
type TorrentsLoadedMsg struct {
	Torrents []api.TorrentStats
}

type TorrentsLoadErrorMsg struct {
	Err error
}

// RefreshTorrentsMsg tells the torrent list to reload from the daemon.
type RefreshTorrentsMsg struct{}

// Listing messages: result of the list-only preview of a torrent source.
type ListingLoadedMsg struct {
	Source  string
	Listing *api.Listing
}

type ListingErrorMsg struct {
	Err error
}

// Upload messages
type UploadDoneMsg struct {
	Err error
}

// TorrentAddedMsg is emitted once per successful add; the app closes the
// dialog and refreshes the torrent list in response.
type TorrentAddedMsg struct{}

// Overlay messages
type CancelOverlayMsg struct{}

type OpenSourcePromptMsg struct{}

type SourceSubmittedMsg struct {
	Source string
}

type OpenSettingsMsg struct{}

// Config messages
type ConfigUpdatedMsg struct {
	Config *config.Config
}

// Error messages
type ErrorMsg struct {
	Err error
}

type ClearErrorMsg struct{}

// Status messages
type StatusMsg struct {
	Text string
}

type ClearStatusMsg struct{}
