package api

// TorrentStats describes one managed torrent as reported by GET /torrents.
type TorrentStats struct {
	ID            int    `json:"id"`
	InfoHash      string `json:"info_hash"`
	Name          string `json:"name"`
	State         string `json:"state"` // "initializing", "live", "paused", "error"
	TotalBytes    uint64 `json:"total_bytes"`
	Downloaded    uint64 `json:"downloaded_and_checked_bytes"`
	Uploaded      uint64 `json:"uploaded_bytes"`
	Fetched       uint64 `json:"fetched_bytes"`
	DownloadSpeed float64 `json:"download_speed_bps"`
	Finished      bool   `json:"finished"`
	Error         string `json:"error,omitempty"`
}

// TorrentFile is one file inside a previewed torrent, in torrent order.
type TorrentFile struct {
	Name   string `json:"name"`
	Length uint64 `json:"length"`
}

// Listing is the result of a list-only add: everything needed to confirm
// an add before committing to it.
type Listing struct {
	InfoHash     string        `json:"info_hash"`
	Name         string        `json:"name"`
	Files        []TorrentFile `json:"files"`
	OutputFolder string        `json:"output_folder"`
	SeenPeers    []string      `json:"seen_peers"`
}

// DirPreview is the daemon's verdict on a candidate output directory.
type DirPreview struct {
	MatchingDirs       []string `json:"matching_dirs"`
	SuggestionFullPath string   `json:"suggestion_full_path"`
	FullPath           string   `json:"full_path"`
	Exists             bool     `json:"exists"`
}

// PeerOpts relaxes per-peer timeouts for hard-to-reach swarms.
type PeerOpts struct {
	ConnectTimeout   int // seconds
	ReadWriteTimeout int // seconds
}

// UploadOptions parametrize a committed add. Built fresh for every attempt.
type UploadOptions struct {
	Overwrite    bool
	OnlyFiles    []int
	InitialPeers []string
	OutputFolder string
	PeerOpts     *PeerOpts
}
