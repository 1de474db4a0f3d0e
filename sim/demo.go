package sim

import (
	"lyric-player-go/lyrics"
	"lyric-player-go/player"
)

// demoTrack pairs track metadata with the key the sources index lyrics by.
type demoTrack struct {
	info player.TrackInfo
}

// demoQueue is the canned play queue every fresh guild starts with.
func demoQueue() []demoTrack {
	return []demoTrack{
		{info: player.TrackInfo{
			Title:       "Neon Tide",
			Artist:      "The Wavelengths",
			Album:       "Signal & Noise",
			ArtworkURL:  "https://cdn.example.com/art/neon-tide.png",
			Duration:    24,
			RequestedBy: "mara",
		}},
		{info: player.TrackInfo{
			Title:       "Paper Planets",
			Artist:      "Juniper Fall",
			Album:       "Low Orbit",
			ArtworkURL:  "https://cdn.example.com/art/paper-planets.png",
			Duration:    18,
			RequestedBy: "theo",
		}},
	}
}

// words spreads per-word timing evenly across a line window. Good enough
// for simulated highlighting.
func words(text []string, start, end float64) []lyrics.Word {
	if len(text) == 0 {
		return nil
	}
	step := (end - start) / float64(len(text))
	out := make([]lyrics.Word, 0, len(text))
	for i, w := range text {
		out = append(out, lyrics.Word{
			Text:      w,
			StartTime: start + float64(i)*step,
			EndTime:   start + float64(i+1)*step,
		})
	}
	return out
}

// DefaultRegistry returns the built-in sources: providerA carries word-level
// timing, providerB only line-level (and only knows the first track), so
// ?source= and auto fall-through are both exercised.
func DefaultRegistry() *Registry {
	providerA := NewStaticSource("providerA", map[string]*lyrics.Document{
		"Neon Tide|The Wavelengths": {
			IsSynced: true,
			Lines: []lyrics.Line{
				{Text: "Static hums along the shore", StartTime: 0, EndTime: 5,
					Words: words([]string{"Static", "hums", "along", "the", "shore"}, 0, 5)},
				{Text: "", StartTime: 5, EndTime: 8},
				{Text: "Neon tide is rising slow", StartTime: 8, EndTime: 13,
					Words: words([]string{"Neon", "tide", "is", "rising", "slow"}, 8, 13)},
				{Text: "Every signal starts to glow", StartTime: 13, EndTime: 19,
					Words: words([]string{"Every", "signal", "starts", "to", "glow"}, 13, 19)},
			},
		},
		"Paper Planets|Juniper Fall": {
			IsSynced: true,
			Lines: []lyrics.Line{
				{Text: "Fold the morning into wings", StartTime: 0, EndTime: 6,
					Words: words([]string{"Fold", "the", "morning", "into", "wings"}, 0, 6)},
				{Text: "Paper planets on a string", StartTime: 6, EndTime: 12,
					Words: words([]string{"Paper", "planets", "on", "a", "string"}, 6, 12)},
			},
		},
	})

	providerB := NewStaticSource("providerB", map[string]*lyrics.Document{
		"Neon Tide|The Wavelengths": {
			IsSynced:      true,
			OffsetSeconds: 0.25,
			Lines: []lyrics.Line{
				{Text: "Static hums along the shore", Romanized: "sutattiku hamuzu", StartTime: 0, EndTime: 5},
				{Text: "Neon tide is rising slow", Romanized: "neon taido", StartTime: 8, EndTime: 13},
				{Text: "Every signal starts to glow", StartTime: 13, EndTime: 19},
			},
		},
	})

	r := NewRegistry()
	r.Register(providerA)
	r.Register(providerB)
	return r
}
