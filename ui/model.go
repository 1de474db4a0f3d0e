// Package ui is the terminal render/control surface of the player. It only
// reads session state plus locator output, and writes nothing back except
// transport actions bound to keys. The near-duplicate layouts of earlier
// player builds are unified behind a single Layout option.
package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lyric-player-go/artwork"
	"lyric-player-go/lyrics"
	"lyric-player-go/player"
)

// Layout selects how much chrome the player draws.
type Layout string

const (
	LayoutCompact Layout = "compact" // lyrics and a progress line only
	LayoutFull    Layout = "full"    // adds queue panel and session stats
)

type tickMsg time.Time

type paletteMsg artwork.Palette

type controlDoneMsg struct{ err error }

// Model is the bubbletea model for one player session.
type Model struct {
	session    *player.Session
	controller *player.Controller
	fetcher    *artwork.Fetcher
	easing     lyrics.Easing
	layout     Layout
	frameEvery time.Duration

	palette    artwork.Palette
	paletteURL string // artwork URL the palette was derived from
	styles     styles

	width    int
	height   int
	notice   string
	quitting bool
}

// New builds the player surface. frameEvery is the redraw period and should
// match the interpolation clock's frame interval.
func New(session *player.Session, controller *player.Controller, fetcher *artwork.Fetcher, easing lyrics.Easing, layout Layout, frameEvery time.Duration) Model {
	return Model{
		session:    session,
		controller: controller,
		fetcher:    fetcher,
		easing:     easing,
		layout:     layout,
		frameEvery: frameEvery,
		palette:    artwork.Default,
		styles:     newStyles(artwork.Default),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.frameEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchPaletteCmd resolves the track artwork into a palette off the Update
// loop; failures inside the fetcher degrade to the default palette.
func (m Model) fetchPaletteCmd(url string) tea.Cmd {
	fetcher := m.fetcher
	return func() tea.Msg {
		return paletteMsg(fetcher.Palette(context.Background(), url))
	}
}

func (m Model) controlCmd(action player.Action) tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		return controlDoneMsg{err: controller.Control(context.Background(), action)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ":
			if m.session.State().IsPaused {
				return m, m.controlCmd(player.ActionResume)
			}
			return m, m.controlCmd(player.ActionPause)
		case "n":
			return m, m.controlCmd(player.ActionSkip)
		case "s":
			return m, m.controlCmd(player.ActionStop)
		}
		return m, nil

	case controlDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, player.ErrControlThrottled) {
				m.notice = "slow down"
			} else {
				m.notice = "control failed"
			}
		} else {
			m.notice = ""
		}
		return m, nil

	case paletteMsg:
		m.palette = artwork.Palette(msg)
		m.styles = newStyles(m.palette)
		return m, nil

	case tickMsg:
		// Re-derive the palette only when the track's artwork changes.
		if st := m.session.State(); st.Track != nil && st.Track.ArtworkURL != m.paletteURL {
			m.paletteURL = st.Track.ArtworkURL
			return m, tea.Batch(m.tickCmd(), m.fetchPaletteCmd(m.paletteURL))
		}
		return m, m.tickCmd()
	}

	return m, nil
}
