package player

import (
	"lyric-player-go/lyrics"
)

// TrackInfo is the now-playing track metadata carried by a snapshot.
// It is replaced wholesale on every successful poll and never mutated.
type TrackInfo struct {
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Album       string  `json:"album,omitempty"`
	ArtworkURL  string  `json:"artwork_url,omitempty"`
	Duration    float64 `json:"duration"`
	RequestedBy string  `json:"requested_by,omitempty"`
}

// QueueItem is one upcoming entry in the guild's play queue.
type QueueItem struct {
	Position int     `json:"position"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Duration float64 `json:"duration"`
}

// Snapshot is the body of GET /guild/{id}/lyrics: the full remote playback
// state at call time. CurrentTime is a pointer because the backend omits it
// when nothing has ever played; absence means position zero.
type Snapshot struct {
	Error        string           `json:"error,omitempty"`
	Track        *TrackInfo       `json:"track,omitempty"`
	Lyrics       *lyrics.Document `json:"lyrics,omitempty"`
	IsPlaying    bool             `json:"is_playing"`
	IsPaused     bool             `json:"is_paused"`
	CurrentTime  *float64         `json:"current_time,omitempty"`
	LyricsSource string           `json:"lyrics_source,omitempty"`
	Queue        []QueueItem      `json:"queue,omitempty"`
}

// Position returns the server-reported playback position, defaulting to 0
// when the backend omitted it.
func (s *Snapshot) Position() float64 {
	if s.CurrentTime == nil {
		return 0
	}
	return *s.CurrentTime
}
