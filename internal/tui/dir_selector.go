package tui

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/scottopell/rqbit/internal/api"
)

// Quiet period between the last keystroke and the preview fetch.
const dirPreviewDebounce = 300 * time.Millisecond

var unixPathChars = regexp.MustCompile(`^[A-Za-z0-9_.\-/]+$`)

// isPotentiallyValidUnixPath reports whether p could name an absolute unix
// directory: non-empty, rooted at "/", charset [A-Za-z0-9_.\-/].
func isPotentiallyValidUnixPath(p string) bool {
	return p != "" && strings.HasPrefix(p, "/") && unixPathChars.MatchString(p)
}

type dirDebounceMsg struct {
	seq int
}

type dirPreviewMsg struct {
	seq     int
	preview *api.DirPreview
	err     error
}

// previewFn matches api.Client.DirPreview. Swapped for a fake in tests.
type previewFn func(ctx context.Context, path string) (*api.DirPreview, error)

// DirSelector is a destination-path input with backend-fed autocomplete.
// Every edit re-validates the path synchronously; valid values trigger a
// debounced preview fetch whose result feeds the suggestion dropdown.
//
// seq is the generation counter: it is bumped on every value change, and
// both debounce ticks and fetch results carry the generation they were
// started for. A mismatch means the user has typed since, so the tick or
// result is dropped — bubbletea ticks cannot be stopped, and this also
// keeps a slow earlier response from overwriting a fresher one.
type DirSelector struct {
	input   textinput.Model
	fetch   previewFn
	valid   bool
	preview *api.DirPreview
	open    bool
	sel     int // -1 none, 0 current value row, 1..n = MatchingDirs
	seq     int
}

func NewDirSelector(fetch previewFn) *DirSelector {
	ti := textinput.New()
	ti.Prompt = "Destination: "
	ti.Placeholder = "/data/downloads"
	ti.Width = 48

	return &DirSelector{
		input: ti,
		fetch: fetch,
		sel:   -1,
	}
}

func (d *DirSelector) Value() string { return d.input.Value() }
func (d *DirSelector) Valid() bool   { return d.valid }

// SetValue replaces the path, as a keystroke would: validity is recomputed
// and a fresh preview fetch is scheduled for valid values.
func (d *DirSelector) SetValue(v string) tea.Cmd {
	d.input.SetValue(v)
	d.input.CursorEnd()
	return d.valueChanged()
}

func (d *DirSelector) Focus() tea.Cmd {
	d.open = true
	d.sel = -1
	return d.input.Focus()
}

func (d *DirSelector) Blur() {
	d.input.Blur()
	d.open = false
	d.sel = -1
}

func (d *DirSelector) Focused() bool { return d.input.Focused() }

// valueChanged re-validates and schedules the debounced fetch. Invalid
// values clear the preview immediately so no stale suggestion survives
// even one render.
func (d *DirSelector) valueChanged() tea.Cmd {
	d.seq++
	d.sel = -1
	d.valid = isPotentiallyValidUnixPath(d.input.Value())
	if !d.valid {
		d.preview = nil
		return nil
	}

	seq := d.seq
	return tea.Tick(dirPreviewDebounce, func(time.Time) tea.Msg {
		return dirDebounceMsg{seq: seq}
	})
}

// HandleKey processes a keystroke while the selector has focus. The bool
// reports whether the key was consumed.
func (d *DirSelector) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	n := d.matchCount()

	switch msg.String() {
	case "down":
		if d.open && d.sel < n {
			d.sel++
		}
		return nil, true

	case "up":
		if d.open && d.sel > -1 {
			d.sel--
		}
		return nil, true

	case "enter":
		if !d.open {
			return nil, false
		}
		switch {
		case d.sel == 0:
			d.open = false
			return nil, true
		case d.sel >= 1 && d.sel <= n:
			cmd := d.SetValue(d.preview.MatchingDirs[d.sel-1])
			d.open = false
			return cmd, true
		}
		// sel == -1: dropdown stays open
		return nil, true

	case "esc":
		if d.open {
			d.open = false
			return nil, true
		}
		return nil, false
	}

	// Remaining keys go to the text input. Keys it leaves the value
	// untouched by (tab, ctrl chords it has no binding for) are reported
	// unconsumed so the host can act on them.
	before := d.input.Value()
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if d.input.Value() != before {
		return tea.Batch(cmd, d.valueChanged()), true
	}
	return cmd, false
}

// Update processes the selector's own async messages (debounce ticks,
// fetch results, cursor blink).
func (d *DirSelector) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dirDebounceMsg:
		if msg.seq != d.seq {
			return nil // superseded by a later edit
		}
		seq := d.seq
		value := d.input.Value()
		fetch := d.fetch
		return func() tea.Msg {
			preview, err := fetch(context.Background(), value)
			return dirPreviewMsg{seq: seq, preview: preview, err: err}
		}

	case dirPreviewMsg:
		if msg.seq != d.seq {
			return nil // response for an older value
		}
		d.sel = -1
		if msg.err != nil {
			d.preview = nil
			log.Warn().Err(msg.err).Msg("directory preview failed")
			return nil
		}
		d.preview = msg.preview
		if len(msg.preview.MatchingDirs) > 0 {
			d.open = true
		}
		return nil
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

// Click handles pointer selection of a dropdown row. Row 0 is the current
// value: nothing to write back, the dropdown just closes.
func (d *DirSelector) Click(row int) tea.Cmd {
	if !d.open || row < 0 || row > d.matchCount() {
		return nil
	}
	var cmd tea.Cmd
	if row >= 1 {
		cmd = d.SetValue(d.preview.MatchingDirs[row-1])
	}
	d.open = false
	return tea.Batch(cmd, d.input.Focus())
}

// DropdownOpen reports whether the dropdown is showing, and DropdownRows
// how many selectable rows it has. Used by the host for mouse hit testing.
func (d *DirSelector) DropdownOpen() bool { return d.open }
func (d *DirSelector) DropdownRows() int  { return d.matchCount() + 1 }

func (d *DirSelector) matchCount() int {
	if d.preview == nil {
		return 0
	}
	return len(d.preview.MatchingDirs)
}

func (d *DirSelector) View(w int) string {
	var b strings.Builder
	b.WriteString("  " + d.input.View())
	b.WriteString("\n")

	if d.open {
		rows := []string{d.input.Value() + "  (current)"}
		if d.preview != nil {
			rows = append(rows, d.preview.MatchingDirs...)
		}
		for i, row := range rows {
			style := StyleDropdownRow
			if i == d.sel {
				style = StyleDropdownSel
			}
			label := row
			if len(label) > w-6 && w > 9 {
				label = "..." + label[len(label)-(w-9):]
			}
			b.WriteString("    " + style.Render(label) + "\n")
		}
	}

	switch {
	case !d.valid:
		b.WriteString("  " + StyleInvalidPath.Render("Not a valid unix path") + "\n")
	case d.preview != nil:
		if d.preview.SuggestionFullPath != "" {
			b.WriteString("  " + StyleSuggestion.Render("Suggestion: "+d.preview.SuggestionFullPath) + "\n")
		}
		if d.preview.Exists {
			b.WriteString("  " + StylePathInfo.Render(d.preview.FullPath+" exists") + "\n")
		} else {
			b.WriteString("  " + StylePathInfo.Render(d.preview.FullPath+" will be created") + "\n")
		}
	}

	return lipgloss.NewStyle().Width(w).Render(b.String())
}
