package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"lyric-player-go/artwork"
	"lyric-player-go/lyrics"
	"lyric-player-go/player"
	"lyric-player-go/stats"
)

// How many lines of context to draw around the current one.
const (
	linesBefore = 2
	linesAfter  = 3
)

type styles struct {
	title    lipgloss.Style
	current  lipgloss.Style
	sung     lipgloss.Style
	unsung   lipgloss.Style
	context  lipgloss.Style
	roman    lipgloss.Style
	errText  lipgloss.Style
	barFill  lipgloss.Style
	barEmpty lipgloss.Style
	help     lipgloss.Style
}

func newStyles(p artwork.Palette) styles {
	accent := lipgloss.Color(p.Accent("#7C5CFF"))
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		current:  lipgloss.NewStyle().Bold(true),
		sung:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		unsung:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		context:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		roman:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		barFill:  lipgloss.NewStyle().Foreground(accent),
		barEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// lineWindow returns the [start, end) slice bounds for the lines to draw
// around the current index, clamped to the document.
func lineWindow(current, total int) (int, int) {
	if total == 0 {
		return 0, 0
	}
	anchor := current
	if anchor < 0 {
		anchor = 0
	}
	start := anchor - linesBefore
	if start < 0 {
		start = 0
	}
	end := anchor + linesAfter + 1
	if end > total {
		end = total
	}
	return start, end
}

// progressCells returns how many of width cells are filled at the given
// position, clamped to [0, width].
func progressCells(position, duration float64, width int) int {
	if duration <= 0 || width <= 0 {
		return 0
	}
	cells := int(position / duration * float64(width))
	if cells < 0 {
		return 0
	}
	if cells > width {
		return width
	}
	return cells
}

// renderCurrentLine draws the active line, word by word when per-word
// timing exists, whole-line otherwise.
func (m Model) renderCurrentLine(line lyrics.Line, t float64) string {
	if len(line.Words) == 0 {
		return m.styles.current.Render(line.Display())
	}

	parts := make([]string, 0, len(line.Words))
	for _, w := range line.Words {
		progress := lyrics.WordProgress(w, t, m.easing)
		switch {
		case progress >= 0.5:
			// The easing ramp drives the glow; at cell granularity it
			// collapses to "highlight once past the halfway point".
			parts = append(parts, m.styles.sung.Render(w.Text))
		case progress > 0:
			parts = append(parts, m.styles.current.Render(w.Text))
		default:
			parts = append(parts, m.styles.unsung.Render(w.Text))
		}
	}
	return strings.Join(parts, " ")
}

// renderQueueAndStats draws the full-layout extras: the upcoming queue and
// the session's poll/frame counters.
func (m Model) renderQueueAndStats(st player.State) string {
	var b strings.Builder

	if len(st.Queue) > 0 {
		b.WriteString("\n" + m.styles.title.Render("Up next") + "\n")
		rows := lo.Map(st.Queue, func(q player.QueueItem, _ int) string {
			return fmt.Sprintf("  %d. %s — %s (%s)", q.Position, q.Title, q.Artist, lyrics.FormatTimestamp(q.Duration))
		})
		b.WriteString(m.styles.context.Render(strings.Join(rows, "\n")))
		b.WriteString("\n")
	}

	s := stats.Get()
	b.WriteString("\n" + m.styles.help.Render(fmt.Sprintf(
		"polls %d (%d failed) · snapshots %d · frames %d · controls %d",
		s.Polls.Load(), s.PollFailures.Load(), s.SnapshotsApplied.Load(),
		s.Frames.Load(), s.ControlActions.Load())))
	b.WriteString("\n")
	return b.String()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.session.State()
	var b strings.Builder

	// Header
	if st.Track != nil {
		b.WriteString(m.styles.title.Render(st.Track.Title))
		b.WriteString(m.styles.context.Render(" — " + st.Track.Artist))
		if st.CurrentSource != "" {
			b.WriteString(m.styles.help.Render("  [" + st.CurrentSource + "]"))
		}
		b.WriteString("\n\n")
	}

	if st.Err != "" {
		b.WriteString(m.styles.errText.Render(st.Err))
		b.WriteString("\n\n")
	}

	// Lyrics window
	switch {
	case st.Track == nil:
		b.WriteString(m.styles.context.Render("Waiting for playback..."))
		b.WriteString("\n")
	case st.Lyrics == nil || len(st.Lyrics.Lines) == 0:
		b.WriteString(m.styles.context.Render("No lyrics for this track"))
		b.WriteString("\n")
	default:
		t := st.Lyrics.EffectiveTime(st.DisplayedTime)
		current := lyrics.LineIndexAt(st.Lyrics.Lines, t)
		start, end := lineWindow(current, len(st.Lyrics.Lines))

		for i := start; i < end; i++ {
			line := st.Lyrics.Lines[i]
			if i == current {
				b.WriteString(m.renderCurrentLine(line, t))
				if line.Romanized != "" {
					b.WriteString("\n")
					b.WriteString(m.styles.roman.Render(line.Romanized))
				}
			} else {
				b.WriteString(m.styles.context.Render(line.Display()))
			}
			b.WriteString("\n")
		}
	}

	// Progress bar
	if st.Track != nil {
		barWidth := m.width - 20
		if barWidth < 10 {
			barWidth = 10
		}
		filled := progressCells(st.DisplayedTime, st.Track.Duration, barWidth)
		bar := m.styles.barFill.Render(strings.Repeat("█", filled)) +
			m.styles.barEmpty.Render(strings.Repeat("─", barWidth-filled))

		status := "▶"
		if st.IsPaused {
			status = "⏸"
		} else if !st.IsPlaying {
			status = "⏹"
		}
		b.WriteString(fmt.Sprintf("\n%s %s %s / %s\n",
			status, bar,
			lyrics.FormatTimestamp(st.DisplayedTime),
			lyrics.FormatTimestamp(st.Track.Duration)))
	}

	if m.layout == LayoutFull {
		b.WriteString(m.renderQueueAndStats(st))
	}

	if m.notice != "" {
		b.WriteString("\n" + m.styles.errText.Render(m.notice) + "\n")
	}

	b.WriteString("\n" + m.styles.help.Render("space pause/resume · n skip · s stop · q quit") + "\n")
	return b.String()
}
