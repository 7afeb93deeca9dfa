// Package wardrobe holds the in-memory wardrobe: clothing items, outfits and
// the selection staged for a new outfit.
package wardrobe

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/garderoba/internal/model"
)

// Options configures a new Store.
type Options struct {
	// Items and Outfits restore previously saved state. Ids must be unique
	// and outfits may only reference listed items.
	Items   []model.ClothingItem
	Outfits []model.Outfit

	// Now returns the current time. Defaults to time.Now in UTC.
	Now func() time.Time

	// NewID returns a fresh unique id. Defaults to random UUIDs.
	NewID func() string
}

// Store is the single source of truth for items, outfits and the selection.
// All methods are safe for concurrent use; each one is atomic.
type Store struct {
	mu        sync.RWMutex
	items     []model.ClothingItem
	outfits   []model.Outfit
	selection []string
	version   uint64

	now   func() time.Time
	newID func() string

	// pubMu orders mutations with their listener calls. Taken before mu.
	pubMu sync.Mutex

	lmu          sync.Mutex
	listeners    map[int]func(Change)
	nextListener int
}

// New creates a Store, restoring any state given in opts.
func New(opts Options) (*Store, error) {
	s := &Store{
		now:       opts.Now,
		newID:     opts.NewID,
		listeners: make(map[int]func(Change)),
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	seen := make(map[string]bool, len(opts.Items))
	for _, it := range opts.Items {
		if it.ID == "" {
			return nil, fmt.Errorf("restoring item %q: empty id", it.Name)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("restoring item %s: duplicate id", it.ID)
		}
		seen[it.ID] = true
		s.items = append(s.items, it.Clone())
	}

	outfitSeen := make(map[string]bool, len(opts.Outfits))
	for _, o := range opts.Outfits {
		if o.ID == "" {
			return nil, fmt.Errorf("restoring outfit %q: empty id", o.Name)
		}
		if outfitSeen[o.ID] {
			return nil, fmt.Errorf("restoring outfit %s: duplicate id", o.ID)
		}
		outfitSeen[o.ID] = true
		for _, id := range o.Items {
			if !seen[id] {
				return nil, fmt.Errorf("restoring outfit %s: unknown item %s", o.ID, id)
			}
		}
		s.outfits = append(s.outfits, o.Clone())
	}

	return s, nil
}

// Version returns the number of mutations committed so far.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot is a deep copy of the store state at one version.
type Snapshot struct {
	Version   uint64               `json:"version"`
	Items     []model.ClothingItem `json:"items"`
	Outfits   []model.Outfit       `json:"outfits"`
	Selection []model.ClothingItem `json:"selection"`
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Version:   s.version,
		Items:     cloneItems(s.items),
		Outfits:   make([]model.Outfit, 0, len(s.outfits)),
		Selection: s.selectedItemsLocked(),
	}
	for _, o := range s.outfits {
		snap.Outfits = append(snap.Outfits, o.Clone())
	}
	return snap
}

// mutate runs fn under the write lock. When fn returns a change, the version
// is bumped and listeners are called after the write lock is released.
// pubMu is always taken before mu so listeners can read the store while
// other mutations wait their turn.
func (s *Store) mutate(fn func() (*Change, error)) error {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	c, err := fn()
	if err != nil || c == nil {
		s.mu.Unlock()
		return err
	}
	s.version++
	c.Version = s.version
	c.ItemCount = len(s.items)
	c.OutfitCount = len(s.outfits)
	s.mu.Unlock()

	s.publish(*c)
	return nil
}

func (s *Store) itemIndexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) outfitIndexLocked(id string) int {
	for i := range s.outfits {
		if s.outfits[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []model.ClothingItem) []model.ClothingItem {
	out := make([]model.ClothingItem, 0, len(items))
	for _, it := range items {
		out = append(out, it.Clone())
	}
	return out
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
