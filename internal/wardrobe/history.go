package wardrobe

import (
	"cmp"
	"slices"
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

// RecentOutfits returns up to n outfits, newest first. n <= 0 returns all.
func (s *Store) RecentOutfits(n int) []model.Outfit {
	outfits := s.Outfits()
	slices.SortStableFunc(outfits, func(a, b model.Outfit) int {
		return b.Created.Compare(a.Created)
	})
	if n > 0 && len(outfits) > n {
		outfits = outfits[:n]
	}
	return outfits
}

// HistoryMonth groups the outfits worn in one calendar month.
type HistoryMonth struct {
	Month   string         `json:"month"`
	Outfits []model.Outfit `json:"outfits"`
}

// History groups outfits by the month they were last worn, falling back to
// the creation time for outfits never worn. Months and the outfits inside
// them are newest first.
func (s *Store) History() []HistoryMonth {
	outfits := s.Outfits()
	slices.SortStableFunc(outfits, func(a, b model.Outfit) int {
		return wornAt(b).Compare(wornAt(a))
	})

	var months []HistoryMonth
	for _, o := range outfits {
		label := wornAt(o).Format("January 2006")
		if n := len(months); n > 0 && months[n-1].Month == label {
			months[n-1].Outfits = append(months[n-1].Outfits, o)
			continue
		}
		months = append(months, HistoryMonth{Month: label, Outfits: []model.Outfit{o}})
	}
	if months == nil {
		months = []HistoryMonth{}
	}
	return months
}

func wornAt(o model.Outfit) time.Time {
	if o.LastWorn != nil {
		return *o.LastWorn
	}
	return o.Created
}

// SuggestOutfit picks the outfit that best fits the weather and occasion.
// Outfits must match the season or the occasion to qualify. Ties are broken
// by favorites, rating, temperature distance, a matching weather condition
// and finally recency.
func (s *Store) SuggestOutfit(w model.Weather, occasion string) (model.Outfit, bool) {
	type candidate struct {
		outfit model.Outfit
		score  int
		dist   int
		cond   bool
	}

	var candidates []candidate
	for _, o := range s.Outfits() {
		score := 0
		if w.Season != "" && equalFold(o.Weather.Season, w.Season) {
			score += 2
		}
		if occasion != "" && equalFold(o.Occasion, occasion) {
			score++
		}
		if score == 0 {
			continue
		}
		dist := 0
		if w.Temperature != 0 && o.Weather.Temperature != 0 {
			dist = abs(o.Weather.Temperature - w.Temperature)
		}
		cond := w.Condition != "" && equalFold(o.Weather.Condition, w.Condition)
		candidates = append(candidates, candidate{outfit: o, score: score, dist: dist, cond: cond})
	}
	if len(candidates) == 0 {
		return model.Outfit{}, false
	}

	best := slices.MinFunc(candidates, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(b.score, a.score),
			cmp.Compare(boolRank(b.outfit.Favorite), boolRank(a.outfit.Favorite)),
			cmp.Compare(b.outfit.Rating, a.outfit.Rating),
			cmp.Compare(a.dist, b.dist),
			cmp.Compare(boolRank(b.cond), boolRank(a.cond)),
			b.outfit.Created.Compare(a.outfit.Created),
		)
	})
	return best.outfit, true
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
