package wardrobe

import (
	"slices"

	"github.com/erazemk/garderoba/internal/model"
)

// ChangeKind names the mutation a Change describes.
type ChangeKind string

// Change kinds.
const (
	ItemAdded        ChangeKind = "item_added"
	ItemUpdated      ChangeKind = "item_updated"
	ItemRemoved      ChangeKind = "item_removed"
	OutfitCreated    ChangeKind = "outfit_created"
	OutfitUpdated    ChangeKind = "outfit_updated"
	OutfitRemoved    ChangeKind = "outfit_removed"
	SelectionChanged ChangeKind = "selection_changed"
)

// Change describes one committed mutation. Item and Outfit hold copies of
// the affected entity (for removals, its last state).
type Change struct {
	Kind    ChangeKind
	Version uint64

	Item   *model.ClothingItem
	Outfit *model.Outfit

	// Outfits rewritten by an item removal.
	Outfits []model.Outfit

	// Selection after a selection change.
	Selection []string

	ItemCount   int
	OutfitCount int
}

// Subscribe registers fn to be called after every committed mutation.
// Calls are synchronous and in commit order. fn may read the store but must
// not mutate it. The returned function removes the listener.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.lmu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.lmu.Unlock()

	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

func (s *Store) publish(c Change) {
	s.lmu.Lock()
	fns := make([]func(Change), 0, len(s.listeners))
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}
