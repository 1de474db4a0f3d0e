// Package artwork turns a track's cover art into a small color palette used
// to theme the player surface. It stands in for the upstream shader
// background at terminal fidelity: the only input is the artwork URL, and
// the output is consumed purely for display.
package artwork

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"sync"
	"time"

	"github.com/EdlinOrg/prominentcolor"
	log "github.com/sirupsen/logrus"

	"lyric-player-go/circuitbreaker"
	"lyric-player-go/logcolors"
	"lyric-player-go/stats"
)

// Palette is a small set of hex colors ("#RRGGBB"), most dominant first.
type Palette struct {
	Colors []string
}

// Accent returns the dominant color, or the fallback when extraction never
// produced one.
func (p Palette) Accent(fallback string) string {
	if len(p.Colors) == 0 {
		return fallback
	}
	return p.Colors[0]
}

// Default is used whenever artwork is missing or extraction fails.
var Default = Palette{Colors: []string{"#7C5CFF", "#4A9EDE", "#E560A4"}}

// Fetcher downloads artwork and extracts dominant colors. Results are keyed
// by URL so each track change costs at most one fetch, and a circuit
// breaker stops re-fetching from a host that keeps failing.
type Fetcher struct {
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker

	mu    sync.Mutex
	byURL map[string]Palette
}

// NewFetcher builds a fetcher. timeout bounds a single artwork download;
// threshold/cooldown configure the breaker.
func NewFetcher(timeout time.Duration, threshold int, cooldown time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		breaker: circuitbreaker.New(circuitbreaker.Config{
			Name:      "artwork",
			Threshold: threshold,
			Cooldown:  cooldown,
		}),
		byURL: make(map[string]Palette),
	}
}

// Palette returns the palette for the given artwork URL. On any failure it
// degrades to the default palette; lyric display must never stall on cover
// art.
func (f *Fetcher) Palette(ctx context.Context, artworkURL string) Palette {
	if artworkURL == "" {
		return Default
	}

	f.mu.Lock()
	if p, ok := f.byURL[artworkURL]; ok {
		f.mu.Unlock()
		return p
	}
	f.mu.Unlock()

	if !f.breaker.Allow() {
		return Default
	}

	p, err := f.fetch(ctx, artworkURL)
	if err != nil {
		stats.Get().ArtworkFailures.Add(1)
		f.breaker.RecordFailure()
		log.Warnf("%s %v", logcolors.LogArtwork, err)
		return Default
	}

	stats.Get().ArtworkFetches.Add(1)
	f.breaker.RecordSuccess()

	f.mu.Lock()
	f.byURL[artworkURL] = p
	f.mu.Unlock()
	return p
}

func (f *Fetcher) fetch(ctx context.Context, artworkURL string) (Palette, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artworkURL, nil)
	if err != nil {
		return Palette{}, fmt.Errorf("building artwork request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Palette{}, fmt.Errorf("fetching artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Palette{}, fmt.Errorf("fetching artwork: %s", resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return Palette{}, fmt.Errorf("decoding artwork: %w", err)
	}

	items, err := prominentcolor.Kmeans(img)
	if err != nil {
		return Palette{}, fmt.Errorf("extracting palette: %w", err)
	}
	if len(items) == 0 {
		return Palette{}, fmt.Errorf("extracting palette: no colors found")
	}

	colors := make([]string, 0, len(items))
	for _, item := range items {
		colors = append(colors, "#"+item.AsString())
	}
	return Palette{Colors: colors}, nil
}
