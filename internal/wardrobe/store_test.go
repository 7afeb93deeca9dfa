package wardrobe

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

var testEpoch = time.Date(2023, 9, 1, 12, 0, 0, 0, time.UTC)

// newTestStore returns a store with sequential ids and a clock that advances
// one hour per call.
func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()

	n := 0
	if opts.NewID == nil {
		opts.NewID = func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}
	}
	tick := 0
	if opts.Now == nil {
		opts.Now = func() time.Time {
			tick++
			return testEpoch.Add(time.Duration(tick) * time.Hour)
		}
	}

	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func seededStore(t *testing.T) *Store {
	t.Helper()
	return newTestStore(t, Options{Items: []model.ClothingItem{
		{ID: "1", Name: "White Shirt", Category: model.CategoryTops, Seasons: model.StringSet{"Spring", "Summer"}},
		{ID: "2", Name: "Blue Jeans", Category: model.CategoryBottoms, Seasons: model.StringSet{"Fall"}},
		{ID: "3", Name: "Leather Boots", Category: model.CategoryShoes, Seasons: model.StringSet{"Fall", "Winter"}},
	}})
}

func TestAddAndGetItem(t *testing.T) {
	s := newTestStore(t, Options{})

	fields := model.ItemFields{
		Name:      "Navy Blazer",
		Brand:     "Ralph Lauren",
		Category:  model.CategoryOuterwear,
		Colors:    model.StringSet{"Navy"},
		Seasons:   model.StringSet{"Spring", "Fall"},
		Occasions: model.StringSet{"Work"},
		Price:     249.5,
		ImageURL:  "https://example.com/blazer.jpg",
	}
	item := s.AddItem(fields)

	if item.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
	if item.Favorite {
		t.Error("expected new item not to be a favorite")
	}

	got, ok := s.Item(item.ID)
	if !ok {
		t.Fatal("expected item to be found")
	}
	if got.Name != fields.Name || got.Brand != fields.Brand || got.Category != fields.Category ||
		got.Price != fields.Price || got.ImageURL != fields.ImageURL {
		t.Errorf("stored fields differ: %+v", got)
	}
	if !slices.Equal(got.Seasons, []string{"Spring", "Fall"}) {
		t.Errorf("expected seasons [Spring Fall], got %v", got.Seasons)
	}
}

func TestAddItemAssignsUniqueIDs(t *testing.T) {
	s, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		item := s.AddItem(model.ItemFields{Name: "Sock", Category: model.CategoryAccessories})
		if seen[item.ID] {
			t.Fatalf("id %s assigned twice", item.ID)
		}
		seen[item.ID] = true
	}

	// Ids of removed items are not handed out again.
	first := s.Items()[0].ID
	s.RemoveItem(first)
	if again := s.AddItem(model.ItemFields{Name: "Sock", Category: model.CategoryAccessories}); again.ID == first {
		t.Error("removed id was reused")
	}
}

func TestUpdateItem(t *testing.T) {
	s := seededStore(t)

	name := "Oxford Shirt"
	price := 59.0
	item, err := s.UpdateItem("1", model.ItemPatch{Name: &name, Price: &price})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if item.Name != "Oxford Shirt" || item.Price != 59 {
		t.Errorf("unexpected update result: %+v", item)
	}
	if item.Category != model.CategoryTops {
		t.Errorf("expected category untouched, got %q", item.Category)
	}

	before := s.Version()
	if _, err := s.UpdateItem("missing", model.ItemPatch{Name: &name}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if s.Version() != before {
		t.Error("failed update must not commit")
	}

	bad := "hats"
	if _, err := s.UpdateItem("1", model.ItemPatch{Category: &bad}); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestToggleItemFavoriteTwiceRestores(t *testing.T) {
	s := seededStore(t)

	first, err := s.ToggleItemFavorite("2")
	if err != nil {
		t.Fatalf("ToggleItemFavorite: %v", err)
	}
	if !first.Favorite {
		t.Error("expected favorite after first toggle")
	}
	second, _ := s.ToggleItemFavorite("2")
	if second.Favorite {
		t.Error("expected original state after second toggle")
	}

	if _, err := s.ToggleItemFavorite("missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveItemCascades(t *testing.T) {
	s := seededStore(t)

	outfit, err := s.CreateOutfit(model.OutfitFields{Name: "Casual", Items: []string{"1", "2"}})
	if err != nil {
		t.Fatalf("CreateOutfit: %v", err)
	}
	if !slices.Equal(outfit.Items, []string{"1", "2"}) {
		t.Fatalf("expected items [1 2], got %v", outfit.Items)
	}
	if err := s.SelectItem("1"); err != nil {
		t.Fatalf("SelectItem: %v", err)
	}

	if !s.RemoveItem("1") {
		t.Fatal("expected RemoveItem to report removal")
	}

	if _, ok := s.Item("1"); ok {
		t.Error("expected removed item to be gone")
	}
	got, _ := s.Outfit(outfit.ID)
	if !slices.Equal(got.Items, []string{"2"}) {
		t.Errorf("expected outfit items [2], got %v", got.Items)
	}
	for _, o := range s.Outfits() {
		if o.Contains("1") {
			t.Errorf("outfit %s still references removed item", o.ID)
		}
	}
	if len(s.Selection()) != 0 {
		t.Error("expected removed item to leave the selection")
	}

	// Removing again is a no-op.
	before := s.Version()
	if s.RemoveItem("1") {
		t.Error("expected second removal to report false")
	}
	if s.Version() != before {
		t.Error("no-op removal must not commit")
	}
}

func TestItemsByCategoryPreservesOrder(t *testing.T) {
	s := newTestStore(t, Options{})

	categories := []string{
		model.CategoryTops, model.CategoryBottoms, model.CategoryTops,
		model.CategoryShoes, model.CategoryTops, model.CategoryDresses,
	}
	var want []string
	for i, c := range categories {
		item := s.AddItem(model.ItemFields{Name: fmt.Sprintf("item %d", i), Category: c})
		if c == model.CategoryTops {
			want = append(want, item.ID)
		}
	}

	var got []string
	for _, it := range s.ItemsByCategory(model.CategoryTops) {
		got = append(got, it.ID)
	}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if n := len(s.ItemsByCategory(model.CategoryOuterwear)); n != 0 {
		t.Errorf("expected no outerwear, got %d", n)
	}
}

func TestItemsBySeasonAndFavorites(t *testing.T) {
	s := seededStore(t)

	fall := s.ItemsBySeason("fall")
	if len(fall) != 2 || fall[0].ID != "2" || fall[1].ID != "3" {
		t.Errorf("expected items 2 and 3 for fall, got %v", fall)
	}

	if n := len(s.FavoriteItems()); n != 0 {
		t.Errorf("expected no favorites, got %d", n)
	}
	s.ToggleItemFavorite("3")
	favs := s.FavoriteItems()
	if len(favs) != 1 || favs[0].ID != "3" {
		t.Errorf("expected item 3 as only favorite, got %v", favs)
	}
}

func TestFacetsAndCategoryCounts(t *testing.T) {
	s := newTestStore(t, Options{})
	s.AddItem(model.ItemFields{Name: "Tee", Brand: "Uniqlo", Category: model.CategoryTops, Colors: model.StringSet{"White"}})
	s.AddItem(model.ItemFields{Name: "Shirt", Brand: "Uniqlo", Category: model.CategoryTops, Colors: model.StringSet{"white", "Blue"}})
	s.AddItem(model.ItemFields{Name: "Boots", Category: model.CategoryShoes})

	f := s.Facets()
	if f.Categories[model.CategoryTops] != 2 || f.Categories[model.CategoryShoes] != 1 {
		t.Errorf("unexpected category facets: %v", f.Categories)
	}
	if f.Colors["white"] != 2 || f.Colors["blue"] != 1 {
		t.Errorf("unexpected color facets: %v", f.Colors)
	}
	if f.Brands["Uniqlo"] != 2 || len(f.Brands) != 1 {
		t.Errorf("unexpected brand facets: %v", f.Brands)
	}

	counts := s.CategoryCounts()
	if len(counts) != len(model.Categories) {
		t.Fatalf("expected %d categories, got %d", len(model.Categories), len(counts))
	}
	if counts[0].Category != model.CategoryTops || counts[0].Count != 2 {
		t.Errorf("unexpected first count: %+v", counts[0])
	}
}

func TestNewRejectsInconsistentState(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"duplicate item", Options{Items: []model.ClothingItem{{ID: "1"}, {ID: "1"}}}},
		{"empty item id", Options{Items: []model.ClothingItem{{Name: "x"}}}},
		{"dangling outfit item", Options{
			Items:   []model.ClothingItem{{ID: "1"}},
			Outfits: []model.Outfit{{ID: "o", Items: []string{"1", "2"}}},
		}},
		{"duplicate outfit", Options{
			Items:   []model.ClothingItem{{ID: "1"}, {ID: "2"}},
			Outfits: []model.Outfit{{ID: "o", Items: []string{"1", "2"}}, {ID: "o"}},
		}},
	}

	for _, tt := range tests {
		if _, err := New(tt.opts); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := seededStore(t)
	s.SelectItem("2")

	snap := s.Snapshot()
	if len(snap.Items) != 3 || len(snap.Selection) != 1 || snap.Selection[0].ID != "2" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	snap.Items[0].Name = "changed"
	snap.Items[0].Seasons[0] = "changed"
	got, _ := s.Item("1")
	if got.Name == "changed" || got.Seasons[0] == "changed" {
		t.Error("snapshot shares memory with the store")
	}
}

func TestSubscribeSeesCommitsInOrder(t *testing.T) {
	s := seededStore(t)

	var kinds []ChangeKind
	var versions []uint64
	unsubscribe := s.Subscribe(func(c Change) {
		kinds = append(kinds, c.Kind)
		versions = append(versions, c.Version)
		// Listeners may read the store.
		if c.Kind == ItemRemoved {
			if _, ok := s.Item(c.Item.ID); ok {
				t.Error("listener saw the removed item")
			}
		}
	})

	outfit, _ := s.CreateOutfit(model.OutfitFields{Name: "x", Items: []string{"1", "2"}})
	s.ToggleItemFavorite("1")
	s.RemoveItem("1")
	s.RemoveItem("1")
	s.RateOutfit(outfit.ID, 9)

	want := []ChangeKind{OutfitCreated, ItemUpdated, ItemRemoved}
	if !slices.Equal(kinds, want) {
		t.Errorf("expected %v, got %v", want, kinds)
	}
	if !slices.IsSorted(versions) || versions[0] != 1 {
		t.Errorf("expected increasing versions from 1, got %v", versions)
	}

	unsubscribe()
	s.RemoveOutfit(outfit.ID)
	if len(kinds) != 3 {
		t.Error("listener called after unsubscribe")
	}
}

func TestItemRemovedChangeCarriesCascade(t *testing.T) {
	s := seededStore(t)
	outfit, _ := s.CreateOutfit(model.OutfitFields{Items: []string{"1", "2", "3"}})

	var got Change
	s.Subscribe(func(c Change) { got = c })
	s.RemoveItem("2")

	if got.Kind != ItemRemoved || got.Item.ID != "2" {
		t.Fatalf("unexpected change: %+v", got)
	}
	if len(got.Outfits) != 1 || got.Outfits[0].ID != outfit.ID || !slices.Equal(got.Outfits[0].Items, []string{"1", "3"}) {
		t.Errorf("unexpected cascade: %+v", got.Outfits)
	}
	if got.ItemCount != 2 || got.OutfitCount != 1 {
		t.Errorf("unexpected counts: items=%d outfits=%d", got.ItemCount, got.OutfitCount)
	}
}

func TestConcurrentMutations(t *testing.T) {
	s, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var mu sync.Mutex
	var last uint64
	s.Subscribe(func(c Change) {
		mu.Lock()
		defer mu.Unlock()
		if c.Version != last+1 {
			t.Errorf("version %d published after %d", c.Version, last)
		}
		last = c.Version
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				item := s.AddItem(model.ItemFields{Name: "x", Category: model.CategoryTops})
				s.ToggleItemFavorite(item.ID)
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()

	if n := len(s.Items()); n != 200 {
		t.Errorf("expected 200 items, got %d", n)
	}
	if s.Version() != 400 {
		t.Errorf("expected version 400, got %d", s.Version())
	}
}

func TestListenerCanReadDuringConcurrentMutations(t *testing.T) {
	s, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Subscribe(func(Change) {
		time.Sleep(time.Millisecond)
		_ = s.Snapshot()
	})

	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 20; j++ {
					s.AddItem(model.ItemFields{Name: "x", Category: model.CategoryTops})
				}
			}()
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent mutations with a reading listener did not finish")
	}
	if s.Version() != 80 {
		t.Errorf("expected version 80, got %d", s.Version())
	}
}

func TestFilterItems(t *testing.T) {
	s := seededStore(t)
	if _, err := s.ToggleItemFavorite("3"); err != nil {
		t.Fatalf("ToggleItemFavorite: %v", err)
	}

	tests := []struct {
		name   string
		filter model.ItemFilter
		want   []string
	}{
		{"empty", model.ItemFilter{}, []string{"1", "2", "3"}},
		{"all category", model.ItemFilter{Category: "all"}, []string{"1", "2", "3"}},
		{"season", model.ItemFilter{Season: "fall"}, []string{"2", "3"}},
		{"season and category", model.ItemFilter{Season: "Fall", Category: model.CategoryShoes}, []string{"3"}},
		{"favorites", model.ItemFilter{FavoriteOnly: true}, []string{"3"}},
		{"query", model.ItemFilter{Query: "JEANS"}, []string{"2"}},
		{"no match", model.ItemFilter{Color: "purple"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, it := range s.FilterItems(tt.filter) {
				got = append(got, it.ID)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
