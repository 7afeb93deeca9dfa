package store

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

func newJournaledStore(t *testing.T) (*wardrobe.Store, func() ([]model.ClothingItem, []model.Outfit)) {
	t.Helper()

	database := db.NewTestDB(t)
	ctx := context.Background()

	n := 0
	s, err := wardrobe.New(wardrobe.Options{
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Now: func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("wardrobe.New: %v", err)
	}
	s.Subscribe(func(c wardrobe.Change) {
		if err := Apply(ctx, database, c); err != nil {
			t.Errorf("Apply(%s): %v", c.Kind, err)
		}
	})

	return s, func() ([]model.ClothingItem, []model.Outfit) {
		items, outfits, err := Load(ctx, database)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		return items, outfits
	}
}

func TestJournalItems(t *testing.T) {
	s, load := newJournaledStore(t)

	shirt := s.AddItem(model.ItemFields{
		Name:     "Linen Shirt",
		Category: model.CategoryTops,
		Colors:   model.StringSet{"White", "Beige"},
		Seasons:  model.StringSet{"Summer"},
		Price:    49.5,
	})
	s.AddItem(model.ItemFields{Name: "Chinos", Category: model.CategoryBottoms})

	name := "Oxford Shirt"
	if _, err := s.UpdateItem(shirt.ID, model.ItemPatch{Name: &name}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	items, _ := load()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	got := items[0]
	if got.ID != shirt.ID || got.Name != "Oxford Shirt" {
		t.Errorf("expected updated shirt first, got %+v", got)
	}
	if !slices.Equal(got.Colors, model.StringSet{"White", "Beige"}) {
		t.Errorf("expected colors [White Beige], got %v", got.Colors)
	}
	if got.Price != 49.5 {
		t.Errorf("expected price 49.5, got %v", got.Price)
	}

	s.RemoveItem(shirt.ID)
	items, _ = load()
	if len(items) != 1 || items[0].Name != "Chinos" {
		t.Errorf("expected only Chinos after removal, got %+v", items)
	}
}

func TestJournalOutfits(t *testing.T) {
	s, load := newJournaledStore(t)

	a := s.AddItem(model.ItemFields{Name: "Tee", Category: model.CategoryTops})
	b := s.AddItem(model.ItemFields{Name: "Jeans", Category: model.CategoryBottoms})
	c := s.AddItem(model.ItemFields{Name: "Sneakers", Category: model.CategoryShoes})

	outfit, err := s.CreateOutfit(model.OutfitFields{
		Name:    "Weekend",
		Items:   []string{c.ID, a.ID, b.ID},
		Weather: model.Weather{Season: "Summer", Temperature: 24, Condition: "Sunny"},
	})
	if err != nil {
		t.Fatalf("CreateOutfit: %v", err)
	}
	if _, err := s.RateOutfit(outfit.ID, 4); err != nil {
		t.Fatalf("RateOutfit: %v", err)
	}
	worn := time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC)
	if _, err := s.MarkOutfitWorn(outfit.ID, worn); err != nil {
		t.Fatalf("MarkOutfitWorn: %v", err)
	}

	_, outfits := load()
	if len(outfits) != 1 {
		t.Fatalf("expected 1 outfit, got %d", len(outfits))
	}
	got := outfits[0]
	if !slices.Equal(got.Items, []string{c.ID, a.ID, b.ID}) {
		t.Errorf("expected item order preserved, got %v", got.Items)
	}
	if got.Rating != 4 {
		t.Errorf("expected rating 4, got %d", got.Rating)
	}
	if got.Weather.Temperature != 24 || got.Weather.Condition != "Sunny" {
		t.Errorf("unexpected weather %+v", got.Weather)
	}
	if got.LastWorn == nil || !got.LastWorn.Equal(worn) {
		t.Errorf("expected last worn %v, got %v", worn, got.LastWorn)
	}

	// Removing an item drops it from the saved outfit too.
	s.RemoveItem(c.ID)
	_, outfits = load()
	if !slices.Equal(outfits[0].Items, []string{a.ID, b.ID}) {
		t.Errorf("expected %v after item removal, got %v", []string{a.ID, b.ID}, outfits[0].Items)
	}

	s.RemoveOutfit(outfit.ID)
	items, outfits := load()
	if len(outfits) != 0 {
		t.Errorf("expected no outfits, got %d", len(outfits))
	}
	if len(items) != 2 {
		t.Errorf("expected items to survive outfit removal, got %d", len(items))
	}
}

func TestSaveAllAndLoad(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	created := time.Date(2023, 10, 5, 8, 0, 0, 0, time.UTC)
	items := []model.ClothingItem{
		{ID: "1", Name: "Coat", Category: model.CategoryOuterwear, Seasons: model.StringSet{"Winter"}},
		{ID: "2", Name: "Scarf", Category: model.CategoryAccessories},
	}
	outfits := []model.Outfit{
		{ID: "o1", Name: "Cold Day", Items: []string{"1", "2"}, Created: created},
	}

	if err := SaveAll(ctx, database, items, outfits); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	gotItems, gotOutfits, err := Load(ctx, database)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(gotItems) != 2 || gotItems[0].ID != "1" || gotItems[1].ID != "2" {
		t.Errorf("unexpected items %+v", gotItems)
	}
	if len(gotOutfits) != 1 || !gotOutfits[0].Created.Equal(created) {
		t.Errorf("unexpected outfits %+v", gotOutfits)
	}
	if gotOutfits[0].LastWorn != nil {
		t.Errorf("expected no last worn, got %v", gotOutfits[0].LastWorn)
	}

	// Restoring into a store must succeed.
	if _, err := wardrobe.New(wardrobe.Options{Items: gotItems, Outfits: gotOutfits}); err != nil {
		t.Errorf("wardrobe.New from loaded data: %v", err)
	}
}

func TestSaveOutfitUnknownItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	err := SaveAll(ctx, database, nil, []model.Outfit{
		{ID: "o1", Name: "Ghost", Items: []string{"missing", "gone"}, Created: time.Now()},
	})
	if err == nil {
		t.Fatal("expected foreign key error")
	}

	_, outfits, _ := Load(ctx, database)
	if len(outfits) != 0 {
		t.Errorf("expected rollback, got %d outfits", len(outfits))
	}
}

func TestApplyIgnoresSelection(t *testing.T) {
	database := db.NewTestDB(t)
	if err := Apply(context.Background(), database, wardrobe.Change{Kind: wardrobe.SelectionChanged}); err != nil {
		t.Errorf("Apply: %v", err)
	}
	if err := Apply(context.Background(), database, wardrobe.Change{Kind: "bogus"}); err == nil {
		t.Error("expected error for unknown change kind")
	}
}

func TestListenerReportsFailures(t *testing.T) {
	database := db.NewTestDB(t)

	s, err := wardrobe.New(wardrobe.Options{})
	if err != nil {
		t.Fatalf("wardrobe.New: %v", err)
	}

	var failed []wardrobe.ChangeKind
	s.Subscribe(Listener(database, func(c wardrobe.Change, err error) {
		failed = append(failed, c.Kind)
	}))

	s.AddItem(model.ItemFields{Name: "Tee", Category: model.CategoryTops})
	if len(failed) != 0 {
		t.Fatalf("expected no failures, got %v", failed)
	}

	database.Close()
	item := s.AddItem(model.ItemFields{Name: "Jeans", Category: model.CategoryBottoms})
	if len(failed) != 1 || failed[0] != wardrobe.ItemAdded {
		t.Errorf("expected one item_added failure, got %v", failed)
	}

	// The store keeps the change regardless.
	if _, ok := s.Item(item.ID); !ok {
		t.Error("expected item to stay in the store after a journal failure")
	}
}
