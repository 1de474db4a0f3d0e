// Package sim is a stand-in guild playback backend for development and
// integration tests. It serves the same snapshot and control surface the
// real bot exposes, with playback position advancing from wall clock.
package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"lyric-player-go/logcolors"
	"lyric-player-go/player"
)

// guildState is one guild's transport state. position is the playback
// offset as of lastUpdate; the live position derives from wall clock while
// playing and unpaused.
type guildState struct {
	current    *demoTrack
	queue      []demoTrack
	playing    bool
	paused     bool
	position   float64
	lastUpdate time.Time
}

// Simulator holds per-guild playback state. Guilds spring into existence on
// first contact, starting the demo queue.
type Simulator struct {
	registry *Registry

	mu     sync.Mutex
	guilds map[string]*guildState
	now    func() time.Time // injectable for tests
}

func New(registry *Registry) *Simulator {
	return &Simulator{
		registry: registry,
		guilds:   make(map[string]*guildState),
		now:      time.Now,
	}
}

// guild returns the state for an id, creating and starting it on first use.
func (s *Simulator) guild(id string) *guildState {
	g, ok := s.guilds[id]
	if !ok {
		queue := demoQueue()
		g = &guildState{
			current:    &queue[0],
			queue:      queue[1:],
			playing:    true,
			lastUpdate: s.now(),
		}
		s.guilds[id] = g
		log.Infof("%s Guild %s started: %q", logcolors.LogSim, id, g.current.info.Title)
	}
	return g
}

// sync folds elapsed wall clock into position and auto-advances through the
// queue when a track runs out.
func (s *Simulator) sync(g *guildState) {
	now := s.now()
	if g.playing && !g.paused && g.current != nil {
		g.position += now.Sub(g.lastUpdate).Seconds()
		for g.current != nil && g.position >= g.current.info.Duration {
			g.position -= g.current.info.Duration
			s.advance(g)
		}
	}
	g.lastUpdate = now
}

// advance pops the next queued track, or stops playback on an empty queue.
func (s *Simulator) advance(g *guildState) {
	if len(g.queue) == 0 {
		g.current = nil
		g.playing = false
		g.paused = false
		g.position = 0
		return
	}
	g.current = &g.queue[0]
	g.queue = g.queue[1:]
}

// Snapshot renders the wire-format playback state for a guild. With nothing
// playing it carries only the error string, matching the real backend.
func (s *Simulator) Snapshot(guildID, sourcePref string) *player.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guild(guildID)
	s.sync(g)

	if g.current == nil {
		return &player.Snapshot{Error: "no track playing"}
	}

	pos := g.position
	info := g.current.info
	snap := &player.Snapshot{
		Track:       &info,
		IsPlaying:   g.playing,
		IsPaused:    g.paused,
		CurrentTime: &pos,
		Queue: lo.Map(g.queue, func(t demoTrack, i int) player.QueueItem {
			return player.QueueItem{
				Position: i + 1,
				Title:    t.info.Title,
				Artist:   t.info.Artist,
				Duration: t.info.Duration,
			}
		}),
	}

	if doc, name, ok := s.registry.Resolve(sourcePref, info.Title, info.Artist); ok {
		snap.Lyrics = doc
		snap.LyricsSource = name
	}

	return snap
}

// Control applies a transport action to a guild.
func (s *Simulator) Control(guildID string, action player.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guild(guildID)
	s.sync(g)

	switch action {
	case player.ActionPause:
		g.paused = true
	case player.ActionResume:
		g.paused = false
	case player.ActionSkip:
		if g.current == nil {
			return fmt.Errorf("nothing to skip")
		}
		g.position = 0
		g.paused = false
		s.advance(g)
	case player.ActionStop:
		g.current = nil
		g.queue = nil
		g.playing = false
		g.paused = false
		g.position = 0
	default:
		return fmt.Errorf("unknown action: %s", action)
	}

	log.Infof("%s Guild %s: %s", logcolors.LogSim, guildID, action)
	return nil
}
