package wardrobe

import (
	"fmt"
	"slices"

	"github.com/erazemk/garderoba/internal/model"
)

// SelectItem stages an item for a new outfit. Selecting an item twice is a
// no-op; unknown items return model.ErrNotFound.
func (s *Store) SelectItem(id string) error {
	return s.mutate(func() (*Change, error) {
		if s.itemIndexLocked(id) < 0 {
			return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
		}
		if slices.Contains(s.selection, id) {
			return nil, nil
		}
		s.selection = append(s.selection, id)
		return &Change{Kind: SelectionChanged, Selection: slices.Clone(s.selection)}, nil
	})
}

// DeselectItem removes an item from the selection and reports whether it
// was selected.
func (s *Store) DeselectItem(id string) bool {
	removed := false
	s.mutate(func() (*Change, error) {
		if !slices.Contains(s.selection, id) {
			return nil, nil
		}
		s.selection = without(s.selection, id)
		removed = true
		return &Change{Kind: SelectionChanged, Selection: slices.Clone(s.selection)}, nil
	})
	return removed
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection() {
	s.mutate(func() (*Change, error) {
		if len(s.selection) == 0 {
			return nil, nil
		}
		s.selection = nil
		return &Change{Kind: SelectionChanged, Selection: []string{}}, nil
	})
}

// Selection returns the staged items in selection order.
func (s *Store) Selection() []model.ClothingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedItemsLocked()
}

func (s *Store) selectedItemsLocked() []model.ClothingItem {
	items := make([]model.ClothingItem, 0, len(s.selection))
	for _, id := range s.selection {
		if i := s.itemIndexLocked(id); i >= 0 {
			items = append(items, s.items[i].Clone())
		}
	}
	return items
}
