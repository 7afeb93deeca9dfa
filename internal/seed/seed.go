// Package seed loads sample wardrobe data and normalizes legacy data shapes
// into the canonical model.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/erazemk/garderoba/internal/model"
)

//go:embed closet.yaml
var closet []byte

// Wardrobe is a normalized set of items and outfits ready to load into a
// store.
type Wardrobe struct {
	Items   []model.ClothingItem
	Outfits []model.Outfit
}

type file struct {
	Items   []rawItem   `yaml:"items"`
	Outfits []rawOutfit `yaml:"outfits"`
}

type rawItem struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Brand       string          `yaml:"brand"`
	Category    string          `yaml:"category"`
	Subcategory string          `yaml:"subcategory"`
	Color       model.StringSet `yaml:"color"`
	Colors      model.StringSet `yaml:"colors"`
	Seasons     model.StringSet `yaml:"seasons"`
	Occasions   model.StringSet `yaml:"occasions"`
	Price       float64         `yaml:"price"`
	Image       string          `yaml:"image"`
	ImageURL    string          `yaml:"imageUrl"`
	Description string          `yaml:"description"`
	Favorite    bool            `yaml:"favorite"`
}

type rawWeather struct {
	Season      string `yaml:"season"`
	Temperature int    `yaml:"temperature"`
	Condition   string `yaml:"condition"`
	Conditions  string `yaml:"conditions"`
}

type rawOutfit struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Occasion    string     `yaml:"occasion"`
	Weather     rawWeather `yaml:"weather"`
	Items       []itemRef  `yaml:"items"`
	Rating      int        `yaml:"rating"`
	Favorite    bool       `yaml:"favorite"`
	Created     time.Time  `yaml:"created"`
	LastWorn    *time.Time `yaml:"lastWorn"`
}

// itemRef is an outfit member written either as a bare id or as an embedded
// item stub.
type itemRef struct {
	rawItem
	stub bool
}

func (r *itemRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.ID = node.Value
		return nil
	}
	r.stub = true
	return node.Decode(&r.rawItem)
}

// Default returns the embedded sample wardrobe.
func Default() (Wardrobe, error) {
	return Parse(closet)
}

// Parse decodes a YAML wardrobe and normalizes it. Outfit item stubs whose
// ids are not in the catalog are appended to it.
func Parse(data []byte) (Wardrobe, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Wardrobe{}, fmt.Errorf("parsing seed: %w", err)
	}

	var w Wardrobe
	known := make(map[string]bool)
	addItem := func(raw rawItem) error {
		item, err := raw.normalize()
		if err != nil {
			return err
		}
		if known[item.ID] {
			return nil
		}
		known[item.ID] = true
		w.Items = append(w.Items, item)
		return nil
	}

	for _, raw := range f.Items {
		if known[raw.ID] {
			return Wardrobe{}, fmt.Errorf("item %s: duplicate id: %w", raw.ID, model.ErrInvalidArgument)
		}
		if err := addItem(raw); err != nil {
			return Wardrobe{}, err
		}
	}

	for _, raw := range f.Outfits {
		ids := make([]string, 0, len(raw.Items))
		for _, ref := range raw.Items {
			if ref.stub {
				if err := addItem(ref.rawItem); err != nil {
					return Wardrobe{}, fmt.Errorf("outfit %s: %w", raw.ID, err)
				}
			}
			ids = append(ids, ref.ID)
		}
		o, err := raw.normalize(ids)
		if err != nil {
			return Wardrobe{}, err
		}
		w.Outfits = append(w.Outfits, o)
	}

	// Bare ids must point at something already loaded.
	for _, o := range w.Outfits {
		for _, id := range o.Items {
			if !known[id] {
				return Wardrobe{}, fmt.Errorf("outfit %s: unknown item %s: %w", o.ID, id, model.ErrInvalidArgument)
			}
		}
	}

	return w, nil
}

func (raw rawItem) normalize() (model.ClothingItem, error) {
	if raw.ID == "" {
		return model.ClothingItem{}, fmt.Errorf("item %q: missing id: %w", raw.Name, model.ErrInvalidArgument)
	}

	fields := model.ItemFields{
		Name:        raw.Name,
		Brand:       raw.Brand,
		Category:    raw.Category,
		Subcategory: raw.Subcategory,
		Colors:      model.NewStringSet(append(raw.Colors.Clone(), raw.Color...)...),
		Seasons:     model.NewStringSet(raw.Seasons...),
		Occasions:   model.NewStringSet(raw.Occasions...),
		Price:       raw.Price,
		ImageURL:    raw.ImageURL,
		Description: raw.Description,
	}
	if fields.ImageURL == "" {
		fields.ImageURL = raw.Image
	}
	if err := fields.Validate(); err != nil {
		return model.ClothingItem{}, fmt.Errorf("item %s: %w", raw.ID, err)
	}

	item := fields.Item(raw.ID)
	item.Favorite = raw.Favorite
	return item, nil
}

func (raw rawOutfit) normalize(ids []string) (model.Outfit, error) {
	if raw.ID == "" {
		return model.Outfit{}, fmt.Errorf("outfit %q: missing id: %w", raw.Name, model.ErrInvalidArgument)
	}
	if err := model.ValidateOutfitItems(ids); err != nil {
		return model.Outfit{}, fmt.Errorf("outfit %s: %w", raw.ID, err)
	}
	if err := model.ValidateRating(raw.Rating); err != nil {
		return model.Outfit{}, fmt.Errorf("outfit %s: %w", raw.ID, err)
	}

	condition := raw.Weather.Condition
	if condition == "" {
		condition = raw.Weather.Conditions
	}

	return model.Outfit{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Items:       ids,
		Occasion:    raw.Occasion,
		Weather: model.Weather{
			Season:      raw.Weather.Season,
			Temperature: raw.Weather.Temperature,
			Condition:   condition,
		},
		Rating:   raw.Rating,
		Favorite: raw.Favorite,
		Created:  raw.Created.UTC(),
		LastWorn: utcPtr(raw.LastWorn),
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
