package model

import (
	"fmt"
	"strings"
	"time"
)

// Rating bounds for outfits.
const (
	MinRating = 0
	MaxRating = 5
)

// MinOutfitItems is the smallest number of distinct items an outfit holds.
const MinOutfitItems = 2

// Weather describes the conditions an outfit is meant for.
type Weather struct {
	Season      string `json:"season,omitempty"`
	Temperature int    `json:"temperature,omitempty"`
	Condition   string `json:"condition,omitempty"`
}

// Outfit is a named, ordered grouping of items.
type Outfit struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Items       []string   `json:"items"`
	Occasion    string     `json:"occasion,omitempty"`
	Weather     Weather    `json:"weather"`
	Rating      int        `json:"rating"`
	Favorite    bool       `json:"favorite"`
	Created     time.Time  `json:"created"`
	LastWorn    *time.Time `json:"lastWorn,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with it.
func (o Outfit) Clone() Outfit {
	items := make([]string, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	if o.LastWorn != nil {
		worn := *o.LastWorn
		o.LastWorn = &worn
	}
	return o
}

// Contains reports whether the outfit references item id.
func (o Outfit) Contains(id string) bool {
	for _, have := range o.Items {
		if have == id {
			return true
		}
	}
	return false
}

// OutfitFields holds the caller-supplied fields of a new outfit.
type OutfitFields struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
	Occasion    string   `json:"occasion"`
	Weather     Weather  `json:"weather"`
}

// OutfitPatch is a partial update of an outfit. Nil fields are left unchanged.
type OutfitPatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Items       *[]string `json:"items,omitempty"`
	Occasion    *string   `json:"occasion,omitempty"`
	Weather     *Weather  `json:"weather,omitempty"`
	Rating      *int      `json:"rating,omitempty"`
	Favorite    *bool     `json:"favorite,omitempty"`
}

// Validate checks the fields present in the patch that do not depend on
// wardrobe contents.
func (p OutfitPatch) Validate() error {
	if p.Rating != nil {
		if err := ValidateRating(*p.Rating); err != nil {
			return err
		}
	}
	if p.Items != nil {
		if err := ValidateOutfitItems(*p.Items); err != nil {
			return err
		}
	}
	return nil
}

// Apply merges the patch into o.
func (p OutfitPatch) Apply(o *Outfit) {
	if p.Name != nil {
		o.Name = *p.Name
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.Items != nil {
		items := make([]string, len(*p.Items))
		copy(items, *p.Items)
		o.Items = items
	}
	if p.Occasion != nil {
		o.Occasion = *p.Occasion
	}
	if p.Weather != nil {
		o.Weather = *p.Weather
	}
	if p.Rating != nil {
		o.Rating = *p.Rating
	}
	if p.Favorite != nil {
		o.Favorite = *p.Favorite
	}
}

// ValidateRating rejects ratings outside [MinRating, MaxRating].
// Out-of-range values are never clamped.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: rating %d outside %d..%d", ErrInvalidArgument, rating, MinRating, MaxRating)
	}
	return nil
}

// ValidateOutfitItems checks that ids holds at least MinOutfitItems
// distinct, non-empty ids.
func ValidateOutfitItems(ids []string) error {
	if len(ids) < MinOutfitItems {
		return fmt.Errorf("%w: outfit needs at least %d items, got %d", ErrInvalidArgument, MinOutfitItems, len(ids))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: empty item id", ErrInvalidArgument)
		}
		if seen[id] {
			return fmt.Errorf("%w: item %s listed twice", ErrInvalidArgument, id)
		}
		seen[id] = true
	}
	return nil
}
