package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottopell/rqbit/internal/api"
)

// fakePreview records DirPreview calls and serves a canned response.
type fakePreview struct {
	mu      sync.Mutex
	paths   []string
	preview *api.DirPreview
	err     error
}

func (f *fakePreview) fetch(_ context.Context, path string) (*api.DirPreview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return f.preview, f.err
}

func (f *fakePreview) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestIsPotentiallyValidUnixPath(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"", false},
		{"relative/path", false},
		{"/has space", false},
		{"/has|pipe", false},
		{"/data/downloads", true},
		{"/", true},
		{"/a-b_c.d/e", true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, isPotentiallyValidUnixPath(tc.path), "path %q", tc.path)
	}
}

func TestDebounceUsesFinalValueOnly(t *testing.T) {
	fake := &fakePreview{preview: &api.DirPreview{FullPath: "/down", Exists: true}}
	d := NewDirSelector(fake.fetch)

	require.NotNil(t, d.SetValue("/d"))
	firstSeq := d.seq
	require.NotNil(t, d.SetValue("/do"))
	require.NotNil(t, d.SetValue("/down"))

	// Ticks from the superseded edits fire but are ignored.
	assert.Nil(t, d.Update(dirDebounceMsg{seq: firstSeq}))
	assert.Empty(t, fake.calls())

	// Only the tick for the final value dispatches a fetch.
	cmd := d.Update(dirDebounceMsg{seq: d.seq})
	require.NotNil(t, cmd)
	msg := cmd()

	require.Equal(t, []string{"/down"}, fake.calls())

	d.Update(msg)
	require.NotNil(t, d.preview)
	assert.Equal(t, "/down", d.preview.FullPath)
}

func TestInvalidValueClearsPreviewWithoutFetch(t *testing.T) {
	fake := &fakePreview{}
	d := NewDirSelector(fake.fetch)

	d.SetValue("/data")
	d.Update(dirPreviewMsg{seq: d.seq, preview: &api.DirPreview{
		MatchingDirs: []string{"/data/a"},
		FullPath:     "/data",
	}})
	require.NotNil(t, d.preview)

	cmd := d.SetValue("no longer valid")

	assert.Nil(t, cmd, "invalid value must not schedule a fetch")
	assert.False(t, d.Valid())
	assert.Nil(t, d.preview, "stale suggestions must be cleared synchronously")
	assert.Empty(t, fake.calls())
}

func TestStaleFetchResultDropped(t *testing.T) {
	fake := &fakePreview{}
	d := NewDirSelector(fake.fetch)

	d.SetValue("/old")
	oldSeq := d.seq
	d.SetValue("/new")

	d.Update(dirPreviewMsg{seq: oldSeq, preview: &api.DirPreview{FullPath: "/old"}})
	assert.Nil(t, d.preview, "response for an older value must not be displayed")
}

func TestFetchErrorClearsPreview(t *testing.T) {
	fake := &fakePreview{}
	d := NewDirSelector(fake.fetch)

	d.SetValue("/data")
	d.Update(dirPreviewMsg{seq: d.seq, preview: &api.DirPreview{FullPath: "/data"}})
	require.NotNil(t, d.preview)

	d.seq++ // as a new edit would
	d.Update(dirPreviewMsg{seq: d.seq, err: errors.New("daemon unreachable")})
	assert.Nil(t, d.preview)
}

func TestArrowKeysClampSelection(t *testing.T) {
	d := NewDirSelector((&fakePreview{}).fetch)
	d.SetValue("/data")
	d.Update(dirPreviewMsg{seq: d.seq, preview: &api.DirPreview{
		MatchingDirs: []string{"/data/a", "/data/b", "/data/c"},
	}})
	require.True(t, d.DropdownOpen())
	require.Equal(t, -1, d.sel)

	for i := 0; i < 4; i++ {
		d.HandleKey(keyMsg(tea.KeyDown))
	}
	assert.Equal(t, 3, d.sel, "down clamps at the last suggestion")

	for i := 0; i < 6; i++ {
		d.HandleKey(keyMsg(tea.KeyUp))
	}
	assert.Equal(t, -1, d.sel, "up clamps at no selection")
}

func TestKeysTheInputIgnoresAreNotConsumed(t *testing.T) {
	d := NewDirSelector((&fakePreview{}).fetch)
	d.Focus()
	d.SetValue("/data")

	for _, k := range []tea.KeyType{tea.KeyTab, tea.KeyCtrlS, tea.KeyCtrlP} {
		_, consumed := d.HandleKey(keyMsg(k))
		assert.False(t, consumed, "key %v must stay available to the host", k)
	}

	_, consumed := d.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.True(t, consumed, "edits belong to the input")
	assert.Equal(t, "/datax", d.Value())
}

func TestEnterWritesBackSelectedSuggestion(t *testing.T) {
	d := NewDirSelector((&fakePreview{}).fetch)
	d.SetValue("/x")
	d.Update(dirPreviewMsg{seq: d.seq, preview: &api.DirPreview{
		MatchingDirs: []string{"/a", "/b", "/c"},
	}})

	// -1 -> 0 -> 1 -> 2: row 2 is the second suggestion.
	d.HandleKey(keyMsg(tea.KeyDown))
	d.HandleKey(keyMsg(tea.KeyDown))
	d.HandleKey(keyMsg(tea.KeyDown))

	cmd, consumed := d.HandleKey(keyMsg(tea.KeyEnter))
	assert.True(t, consumed)
	assert.Equal(t, "/b", d.Value())
	assert.False(t, d.DropdownOpen())
	assert.NotNil(t, cmd, "a write-back is a value change and re-runs the fetch protocol")
}

func TestEnterOnCurrentValueRowClosesWithoutChange(t *testing.T) {
	d := NewDirSelector((&fakePreview{}).fetch)
	d.SetValue("/data")
	d.Update(dirPreviewMsg{seq: d.seq, preview: &api.DirPreview{
		MatchingDirs: []string{"/data/a"},
	}})

	d.HandleKey(keyMsg(tea.KeyDown)) // row 0: current value
	d.HandleKey(keyMsg(tea.KeyEnter))

	assert.Equal(t, "/data", d.Value())
	assert.False(t, d.DropdownOpen())
}

func TestEnterWithNoSelectionKeepsDropdownOpen(t *testing.T) {
	d := NewDirSelector((&fakePreview{}).fetch)
	d.SetValue("/data")
	d.Update(dirPreviewMsg{seq: d.seq, preview: &api.DirPreview{
		MatchingDirs: []string{"/data/a"},
	}})

	d.HandleKey(keyMsg(tea.KeyEnter))
	assert.True(t, d.DropdownOpen())
}

func TestClickSelectsSuggestion(t *testing.T) {
	d := NewDirSelector((&fakePreview{}).fetch)
	d.SetValue("/data")
	d.Update(dirPreviewMsg{seq: d.seq, preview: &api.DirPreview{
		MatchingDirs: []string{"/data/a", "/data/b"},
	}})

	cmd := d.Click(2)
	assert.NotNil(t, cmd)
	assert.Equal(t, "/data/b", d.Value())
	assert.False(t, d.DropdownOpen())
}

func TestClickOnCurrentValueRowIsNoOpWrite(t *testing.T) {
	d := NewDirSelector((&fakePreview{}).fetch)
	d.SetValue("/data")
	d.Update(dirPreviewMsg{seq: d.seq, preview: &api.DirPreview{
		MatchingDirs: []string{"/data/a"},
	}})

	d.Click(0)
	assert.Equal(t, "/data", d.Value())
	assert.False(t, d.DropdownOpen())
}

func TestPreviewArrivalResetsSelection(t *testing.T) {
	d := NewDirSelector((&fakePreview{}).fetch)
	d.SetValue("/data")
	d.Update(dirPreviewMsg{seq: d.seq, preview: &api.DirPreview{
		MatchingDirs: []string{"/data/a", "/data/b"},
	}})
	d.HandleKey(keyMsg(tea.KeyDown))
	d.HandleKey(keyMsg(tea.KeyDown))
	require.Equal(t, 1, d.sel)

	d.seq++
	d.Update(dirPreviewMsg{seq: d.seq, preview: &api.DirPreview{
		MatchingDirs: []string{"/data/c"},
	}})
	assert.Equal(t, -1, d.sel)
}
