package model

import (
	"fmt"
	"strings"
)

// Clothing categories.
const (
	CategoryTops        = "tops"
	CategoryBottoms     = "bottoms"
	CategoryOuterwear   = "outerwear"
	CategoryShoes       = "shoes"
	CategoryAccessories = "accessories"
	CategoryDresses     = "dresses"
)

// Categories lists every category in display order.
var Categories = []string{
	CategoryTops,
	CategoryBottoms,
	CategoryOuterwear,
	CategoryShoes,
	CategoryAccessories,
	CategoryDresses,
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ClothingItem is a single piece of clothing in the wardrobe.
type ClothingItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand,omitempty"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Colors      StringSet `json:"colors"`
	Seasons     StringSet `json:"seasons"`
	Occasions   StringSet `json:"occasions"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Description string    `json:"description,omitempty"`
	Favorite    bool      `json:"favorite"`
}

// Clone returns a copy that shares no slices with it.
func (it ClothingItem) Clone() ClothingItem {
	it.Colors = it.Colors.Clone()
	it.Seasons = it.Seasons.Clone()
	it.Occasions = it.Occasions.Clone()
	return it
}

// ItemFields holds the caller-supplied fields of a new item.
type ItemFields struct {
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Colors      StringSet `json:"colors"`
	Seasons     StringSet `json:"seasons"`
	Occasions   StringSet `json:"occasions"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description"`
}

// Validate checks the fields a new item must carry.
func (f ItemFields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidArgument)
	}
	if !ValidCategory(f.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, f.Category)
	}
	if f.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}
	return nil
}

// Item builds a non-favorite item with the given id from the fields.
func (f ItemFields) Item(id string) ClothingItem {
	return ClothingItem{
		ID:          id,
		Name:        f.Name,
		Brand:       f.Brand,
		Category:    f.Category,
		Subcategory: f.Subcategory,
		Colors:      NewStringSet(f.Colors...),
		Seasons:     NewStringSet(f.Seasons...),
		Occasions:   NewStringSet(f.Occasions...),
		Price:       f.Price,
		ImageURL:    f.ImageURL,
		Description: f.Description,
	}
}

// ItemPatch is a partial update of an item. Nil fields are left unchanged.
type ItemPatch struct {
	Name        *string    `json:"name,omitempty"`
	Brand       *string    `json:"brand,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Subcategory *string    `json:"subcategory,omitempty"`
	Colors      *StringSet `json:"colors,omitempty"`
	Seasons     *StringSet `json:"seasons,omitempty"`
	Occasions   *StringSet `json:"occasions,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	Description *string    `json:"description,omitempty"`
	Favorite    *bool      `json:"favorite,omitempty"`
}

// Validate checks the fields present in the patch.
func (p ItemPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}
	if p.Category != nil && !ValidCategory(*p.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, *p.Category)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}
	return nil
}

// Apply merges the patch into it.
func (p ItemPatch) Apply(it *ClothingItem) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Brand != nil {
		it.Brand = *p.Brand
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.Subcategory != nil {
		it.Subcategory = *p.Subcategory
	}
	if p.Colors != nil {
		it.Colors = NewStringSet(*p.Colors...)
	}
	if p.Seasons != nil {
		it.Seasons = NewStringSet(*p.Seasons...)
	}
	if p.Occasions != nil {
		it.Occasions = NewStringSet(*p.Occasions...)
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.ImageURL != nil {
		it.ImageURL = *p.ImageURL
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Favorite != nil {
		it.Favorite = *p.Favorite
	}
}

// ItemFilter selects items by simple equality predicates. Empty fields and
// the value "all" match everything.
type ItemFilter struct {
	Category     string
	Color        string
	Season       string
	Occasion     string
	Brand        string
	Query        string
	FavoriteOnly bool
}

// Match reports whether it satisfies every predicate of the filter.
func (f ItemFilter) Match(it ClothingItem) bool {
	if active(f.Category) && !strings.EqualFold(it.Category, f.Category) {
		return false
	}
	if active(f.Color) && !it.Colors.Contains(f.Color) {
		return false
	}
	if active(f.Season) && !it.Seasons.Contains(f.Season) {
		return false
	}
	if active(f.Occasion) && !it.Occasions.Contains(f.Occasion) {
		return false
	}
	if active(f.Brand) && !strings.EqualFold(it.Brand, f.Brand) {
		return false
	}
	if f.FavoriteOnly && !it.Favorite {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(it.Name), q) && !strings.Contains(strings.ToLower(it.Brand), q) {
			return false
		}
	}
	return true
}

func active(v string) bool {
	return v != "" && !strings.EqualFold(v, "all")
}
