package lyrics

// Placeholder is rendered in place of a line with no text (instrumental breaks).
const Placeholder = "♪"

// Word is a single word (or syllable) with its own timing window, in seconds.
type Word struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Line is one lyric line. Words may be empty, in which case the whole line
// highlights as a unit over [StartTime, EndTime].
type Line struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Romanized string  `json:"romanized,omitempty"`
	Words     []Word  `json:"words,omitempty"`
}

// Display returns the line text, or the placeholder glyph for empty lines.
func (l Line) Display() string {
	if l.Text == "" {
		return Placeholder
	}
	return l.Text
}

// Document is a full synced-lyrics document as delivered by a provider.
// Lines are trusted to arrive in chronological order; that order is the
// only index the locator uses.
type Document struct {
	IsSynced      bool    `json:"is_synced"`
	Source        string  `json:"source"`
	OffsetSeconds float64 `json:"offset"`
	TotalLines    int     `json:"total_lines"`
	Lines         []Line  `json:"lines"`
}

// EffectiveTime applies the document's global timing correction to a
// displayed playback position before it is handed to the locator.
func (d *Document) EffectiveTime(displayed float64) float64 {
	return displayed + d.OffsetSeconds
}
