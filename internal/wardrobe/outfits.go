package wardrobe

import (
	"fmt"
	"slices"
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

// CreateOutfit stores a new outfit built from at least two distinct,
// existing items. It starts unrated and not a favorite.
func (s *Store) CreateOutfit(f model.OutfitFields) (model.Outfit, error) {
	if err := model.ValidateOutfitItems(f.Items); err != nil {
		return model.Outfit{}, err
	}

	var created model.Outfit
	err := s.mutate(func() (*Change, error) {
		if err := s.checkItemsLocked(f.Items); err != nil {
			return nil, err
		}
		created = s.newOutfitLocked(f, f.Items)
		c := created.Clone()
		return &Change{Kind: OutfitCreated, Outfit: &c}, nil
	})
	return created, err
}

// CreateOutfitFromSelection stores a new outfit from the staged selection
// and clears the selection.
func (s *Store) CreateOutfitFromSelection(f model.OutfitFields) (model.Outfit, error) {
	var created model.Outfit
	err := s.mutate(func() (*Change, error) {
		if err := model.ValidateOutfitItems(s.selection); err != nil {
			return nil, fmt.Errorf("selection: %w", err)
		}
		created = s.newOutfitLocked(f, s.selection)
		s.selection = nil
		c := created.Clone()
		return &Change{Kind: OutfitCreated, Outfit: &c, Selection: []string{}}, nil
	})
	return created, err
}

func (s *Store) newOutfitLocked(f model.OutfitFields, ids []string) model.Outfit {
	o := model.Outfit{
		ID:          s.newID(),
		Name:        f.Name,
		Description: f.Description,
		Items:       slices.Clone(ids),
		Occasion:    f.Occasion,
		Weather:     f.Weather,
		Created:     s.now(),
	}
	s.outfits = append(s.outfits, o)
	return o.Clone()
}

func (s *Store) checkItemsLocked(ids []string) error {
	for _, id := range ids {
		if s.itemIndexLocked(id) < 0 {
			return fmt.Errorf("%w: unknown item %s", model.ErrInvalidArgument, id)
		}
	}
	return nil
}

// UpdateOutfit merges patch into the outfit. A replacement item list is
// checked like CreateOutfit.
func (s *Store) UpdateOutfit(id string, patch model.OutfitPatch) (model.Outfit, error) {
	if err := patch.Validate(); err != nil {
		return model.Outfit{}, err
	}
	return s.updateOutfit(id, func(o *model.Outfit) error {
		if patch.Items != nil {
			if err := s.checkItemsLocked(*patch.Items); err != nil {
				return err
			}
		}
		patch.Apply(o)
		return nil
	})
}

// ToggleOutfitFavorite flips the outfit's favorite flag.
func (s *Store) ToggleOutfitFavorite(id string) (model.Outfit, error) {
	return s.updateOutfit(id, func(o *model.Outfit) error {
		o.Favorite = !o.Favorite
		return nil
	})
}

// RateOutfit sets the outfit's rating. Ratings outside 0..5 are rejected
// with model.ErrInvalidArgument.
func (s *Store) RateOutfit(id string, rating int) (model.Outfit, error) {
	if err := model.ValidateRating(rating); err != nil {
		return model.Outfit{}, err
	}
	return s.updateOutfit(id, func(o *model.Outfit) error {
		o.Rating = rating
		return nil
	})
}

// MarkOutfitWorn records when the outfit was last worn. A zero time means now.
func (s *Store) MarkOutfitWorn(id string, at time.Time) (model.Outfit, error) {
	if at.IsZero() {
		at = s.now()
	}
	at = at.UTC()
	return s.updateOutfit(id, func(o *model.Outfit) error {
		o.LastWorn = &at
		return nil
	})
}

func (s *Store) updateOutfit(id string, fn func(*model.Outfit) error) (model.Outfit, error) {
	var updated model.Outfit
	err := s.mutate(func() (*Change, error) {
		i := s.outfitIndexLocked(id)
		if i < 0 {
			return nil, fmt.Errorf("outfit %s: %w", id, model.ErrNotFound)
		}
		next := s.outfits[i].Clone()
		if err := fn(&next); err != nil {
			return nil, err
		}
		s.outfits[i] = next
		updated = next.Clone()
		c := next.Clone()
		return &Change{Kind: OutfitUpdated, Outfit: &c}, nil
	})
	return updated, err
}

// RemoveOutfit deletes the outfit and reports whether it existed.
func (s *Store) RemoveOutfit(id string) bool {
	removed := false
	s.mutate(func() (*Change, error) {
		i := s.outfitIndexLocked(id)
		if i < 0 {
			return nil, nil
		}
		gone := s.outfits[i]
		s.outfits = append(s.outfits[:i], s.outfits[i+1:]...)
		removed = true
		return &Change{Kind: OutfitRemoved, Outfit: &gone}, nil
	})
	return removed
}

// Outfit returns the outfit with the given id.
func (s *Store) Outfit(id string) (model.Outfit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.outfitIndexLocked(id)
	if i < 0 {
		return model.Outfit{}, false
	}
	return s.outfits[i].Clone(), true
}

// OutfitItems resolves the outfit's item references in outfit order.
func (s *Store) OutfitItems(id string) ([]model.ClothingItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.outfitIndexLocked(id)
	if i < 0 {
		return nil, false
	}
	items := make([]model.ClothingItem, 0, len(s.outfits[i].Items))
	for _, itemID := range s.outfits[i].Items {
		if j := s.itemIndexLocked(itemID); j >= 0 {
			items = append(items, s.items[j].Clone())
		}
	}
	return items, true
}

// Outfits returns every outfit in creation order.
func (s *Store) Outfits() []model.Outfit {
	return s.matchOutfits(func(model.Outfit) bool { return true })
}

// FavoriteOutfits returns the outfits marked as favorite.
func (s *Store) FavoriteOutfits() []model.Outfit {
	return s.matchOutfits(func(o model.Outfit) bool { return o.Favorite })
}

func (s *Store) matchOutfits(keep func(model.Outfit) bool) []model.Outfit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Outfit{}
	for _, o := range s.outfits {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}
