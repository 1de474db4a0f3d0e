package sim

import (
	"fmt"
	"sync"

	"lyric-player-go/lyrics"
)

// Source supplies lyric documents for tracks, by name. The simulator keeps
// one registry of sources so ?source= can pick a specific provider and
// "auto" can fall through them in registration order.
type Source interface {
	// Name returns the source identifier (e.g. "providerA")
	Name() string

	// Document returns the lyrics for a track, if this source has them
	Document(title, artist string) (*lyrics.Document, bool)
}

// Registry holds registered lyric sources in registration order.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Register adds a source. Re-registering a name replaces it but keeps its
// position in the auto fall-through order.
func (r *Registry) Register(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[s.Name()]; !exists {
		r.order = append(r.order, s.Name())
	}
	r.sources[s.Name()] = s
}

// Get retrieves a source by name.
func (r *Registry) Get(name string) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("source not found: %s", name)
	}
	return s, nil
}

// List returns all registered source names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Resolve finds a document for the track honoring the source preference:
// a named source is consulted alone, "auto" (or empty) walks sources in
// registration order and takes the first hit. It returns the document and
// the name of the source that supplied it.
func (r *Registry) Resolve(pref, title, artist string) (*lyrics.Document, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if pref != "" && pref != "auto" {
		s, ok := r.sources[pref]
		if !ok {
			return nil, "", false
		}
		doc, ok := s.Document(title, artist)
		return doc, pref, ok
	}

	for _, name := range r.order {
		if doc, ok := r.sources[name].Document(title, artist); ok {
			return doc, name, true
		}
	}
	return nil, "", false
}

// staticSource serves canned documents keyed by "title|artist".
type staticSource struct {
	name string
	docs map[string]*lyrics.Document
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Document(title, artist string) (*lyrics.Document, bool) {
	doc, ok := s.docs[title+"|"+artist]
	return doc, ok
}

// NewStaticSource builds a source from canned documents keyed by
// "title|artist". Each returned document reports the source's name.
func NewStaticSource(name string, docs map[string]*lyrics.Document) Source {
	for _, d := range docs {
		d.Source = name
		d.TotalLines = len(d.Lines)
	}
	return &staticSource{name: name, docs: docs}
}
