package lyrics

import "math"

// Easing shapes the cosmetic word-highlight ramp. It must map [0,1] to [0,1]
// monotonically; it never affects which line or word is current.
type Easing func(x float64) float64

// EaseLinear is the identity ramp.
func EaseLinear(x float64) float64 { return x }

// EaseOutSine is the canonical highlight ramp: fast attack, soft landing.
func EaseOutSine(x float64) float64 { return math.Sin(x * math.Pi / 2) }

// EasingByName maps a config value to an easing, defaulting to ease-out sine.
func EasingByName(name string) Easing {
	if name == "linear" {
		return EaseLinear
	}
	return EaseOutSine
}

// LineIndexAt returns the index of the line considered current at time t.
//
// The scan is linear and first-match-wins, which keeps behavior
// deterministic when providers hand us overlapping or duplicated ranges:
//
//  1. the first line whose [StartTime, EndTime] contains t (inclusive), else
//  2. the most recently started line (covers gaps between lines, and the
//     tail of the track after the final line ends), else
//  3. -1 when t precedes the first line.
//
// Line counts are small (song lyrics), so an O(n) rescan per time update is
// preferred over a stateful cursor.
func LineIndexAt(lines []Line, t float64) int {
	for i, line := range lines {
		if t >= line.StartTime && t <= line.EndTime {
			return i
		}
	}

	last := -1
	for i, line := range lines {
		if t >= line.StartTime {
			last = i
		}
	}
	return last
}

// WordProgress returns the highlight progress of a word at time t, in [0,1].
//
// A zero-length word is instantaneous: 0 before its start, 1 from its start
// onward. Division by zero can therefore never occur.
func WordProgress(w Word, t float64, ease Easing) float64 {
	if t < w.StartTime {
		return 0
	}
	if t >= w.EndTime {
		return 1
	}
	if ease == nil {
		ease = EaseOutSine
	}
	return ease((t - w.StartTime) / (w.EndTime - w.StartTime))
}
