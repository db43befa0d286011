package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/scottopell/rqbit/internal/api"
)

// FilePanel lets the user pick which files of a previewed torrent to
// download. Indices are 0-based in torrent order; all files start selected.
type FilePanel struct {
	files    []api.TorrentFile
	selected map[int]bool
	cursor   int
	keys     KeyMap
}

func NewFilePanel(keys KeyMap) *FilePanel {
	return &FilePanel{
		selected: make(map[int]bool),
		keys:     keys,
	}
}

// SetFiles replaces the listing and reselects everything.
func (p *FilePanel) SetFiles(files []api.TorrentFile) {
	p.files = files
	p.cursor = 0
	p.SelectAll()
}

func (p *FilePanel) SelectAll() {
	p.selected = make(map[int]bool, len(p.files))
	for i := range p.files {
		p.selected[i] = true
	}
}

func (p *FilePanel) SelectNone() {
	p.selected = make(map[int]bool)
}

// SelectedIndices returns the selected file indices in ascending order.
func (p *FilePanel) SelectedIndices() []int {
	var out []int
	for i := range p.files {
		if p.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

func (p *FilePanel) SelectedCount() int {
	n := 0
	for _, on := range p.selected {
		if on {
			n++
		}
	}
	return n
}

func (p *FilePanel) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
		return true

	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(p.files)-1 {
			p.cursor++
		}
		return true

	case key.Matches(msg, p.keys.Toggle):
		if p.cursor < len(p.files) {
			if p.selected[p.cursor] {
				delete(p.selected, p.cursor)
			} else {
				p.selected[p.cursor] = true
			}
		}
		return true

	case key.Matches(msg, p.keys.SelectAll):
		p.SelectAll()
		return true

	case key.Matches(msg, p.keys.SelectNone):
		p.SelectNone()
		return true
	}

	return false
}

func (p *FilePanel) View(w, h int) string {
	var b strings.Builder

	listH := h - 1 // footer line
	if listH < 1 {
		listH = 1
	}

	start := 0
	if p.cursor >= listH {
		start = p.cursor - listH + 1
	}
	end := start + listH
	if end > len(p.files) {
		end = len(p.files)
	}

	for i := start; i < end; i++ {
		f := p.files[i]

		prefix := "  "
		if i == p.cursor {
			prefix = StyleCursor.Render("▸ ")
		}

		box := "[ ]"
		style := StyleFileExcluded
		if p.selected[i] {
			box = "[x]"
			style = StyleFileIncluded
		}

		label := fmt.Sprintf("%s %s  %s", box, f.Name, humanize.Bytes(f.Length))
		maxW := w - 3
		if len(label) > maxW && maxW > 3 {
			label = label[:maxW-3] + "..."
		}
		b.WriteString(prefix + style.Render(label) + "\n")
	}

	footer := fmt.Sprintf("%d/%d files selected", p.SelectedCount(), len(p.files))
	b.WriteString("  " + StyleSeparator.Render(footer))

	return lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).Render(b.String())
}
