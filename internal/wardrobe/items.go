package wardrobe

import (
	"fmt"
	"strings"

	"github.com/erazemk/garderoba/internal/model"
)

// AddItem stores a new item with a fresh id and favorite unset.
func (s *Store) AddItem(f model.ItemFields) model.ClothingItem {
	var added model.ClothingItem
	s.mutate(func() (*Change, error) {
		added = f.Item(s.newID())
		s.items = append(s.items, added)
		c := added.Clone()
		return &Change{Kind: ItemAdded, Item: &c}, nil
	})
	return added.Clone()
}

// UpdateItem merges patch into the item. A missing id leaves the store
// untouched and returns model.ErrNotFound.
func (s *Store) UpdateItem(id string, patch model.ItemPatch) (model.ClothingItem, error) {
	if err := patch.Validate(); err != nil {
		return model.ClothingItem{}, err
	}

	var updated model.ClothingItem
	err := s.mutate(func() (*Change, error) {
		i := s.itemIndexLocked(id)
		if i < 0 {
			return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
		}
		patch.Apply(&s.items[i])
		updated = s.items[i].Clone()
		c := updated.Clone()
		return &Change{Kind: ItemUpdated, Item: &c}, nil
	})
	return updated, err
}

// ToggleItemFavorite flips the item's favorite flag.
func (s *Store) ToggleItemFavorite(id string) (model.ClothingItem, error) {
	var updated model.ClothingItem
	err := s.mutate(func() (*Change, error) {
		i := s.itemIndexLocked(id)
		if i < 0 {
			return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
		}
		s.items[i].Favorite = !s.items[i].Favorite
		updated = s.items[i].Clone()
		c := updated.Clone()
		return &Change{Kind: ItemUpdated, Item: &c}, nil
	})
	return updated, err
}

// RemoveItem deletes the item and retracts it from every outfit and from the
// selection in the same pass. It reports whether the item existed.
func (s *Store) RemoveItem(id string) bool {
	removed := false
	s.mutate(func() (*Change, error) {
		i := s.itemIndexLocked(id)
		if i < 0 {
			return nil, nil
		}
		gone := s.items[i]
		s.items = append(s.items[:i], s.items[i+1:]...)

		var touched []model.Outfit
		for j := range s.outfits {
			o := &s.outfits[j]
			if !o.Contains(id) {
				continue
			}
			o.Items = without(o.Items, id)
			touched = append(touched, o.Clone())
		}
		s.selection = without(s.selection, id)

		removed = true
		return &Change{Kind: ItemRemoved, Item: &gone, Outfits: touched}, nil
	})
	return removed
}

// Item returns the item with the given id.
func (s *Store) Item(id string) (model.ClothingItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.itemIndexLocked(id)
	if i < 0 {
		return model.ClothingItem{}, false
	}
	return s.items[i].Clone(), true
}

// Items returns every item in insertion order.
func (s *Store) Items() []model.ClothingItem {
	return s.FilterItems(model.ItemFilter{})
}

// ItemsByCategory returns the items of one category in insertion order.
func (s *Store) ItemsByCategory(category string) []model.ClothingItem {
	return s.matchItems(func(it model.ClothingItem) bool {
		return it.Category == category
	})
}

// ItemsBySeason returns the items worn in the given season.
func (s *Store) ItemsBySeason(season string) []model.ClothingItem {
	return s.matchItems(func(it model.ClothingItem) bool {
		return it.Seasons.Contains(season)
	})
}

// FavoriteItems returns the items marked as favorite.
func (s *Store) FavoriteItems() []model.ClothingItem {
	return s.matchItems(func(it model.ClothingItem) bool {
		return it.Favorite
	})
}

// FilterItems returns the items matching every predicate of f.
func (s *Store) FilterItems(f model.ItemFilter) []model.ClothingItem {
	return s.matchItems(f.Match)
}

func (s *Store) matchItems(keep func(model.ClothingItem) bool) []model.ClothingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.ClothingItem{}
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it.Clone())
		}
	}
	return out
}

// Facets counts how many items carry each value of every filter dimension.
type Facets struct {
	Categories map[string]int `json:"categories"`
	Colors     map[string]int `json:"colors"`
	Seasons    map[string]int `json:"seasons"`
	Occasions  map[string]int `json:"occasions"`
	Brands     map[string]int `json:"brands"`
}

// Facets returns per-value counts over all items. Set-valued attributes are
// keyed by their lower-cased value.
func (s *Store) Facets() Facets {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := Facets{
		Categories: make(map[string]int),
		Colors:     make(map[string]int),
		Seasons:    make(map[string]int),
		Occasions:  make(map[string]int),
		Brands:     make(map[string]int),
	}
	for _, it := range s.items {
		f.Categories[it.Category]++
		if it.Brand != "" {
			f.Brands[it.Brand]++
		}
		for _, v := range it.Colors {
			f.Colors[strings.ToLower(v)]++
		}
		for _, v := range it.Seasons {
			f.Seasons[strings.ToLower(v)]++
		}
		for _, v := range it.Occasions {
			f.Occasions[strings.ToLower(v)]++
		}
	}
	return f
}

// CategoryCount is the number of items in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryCounts returns a count for every known category, in display order.
func (s *Store) CategoryCounts() []CategoryCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make([]CategoryCount, 0, len(model.Categories))
	for _, c := range model.Categories {
		n := 0
		for _, it := range s.items {
			if it.Category == c {
				n++
			}
		}
		counts = append(counts, CategoryCount{Category: c, Count: n})
	}
	return counts
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, have := range ids {
		if have != id {
			out = append(out, have)
		}
	}
	return out
}
