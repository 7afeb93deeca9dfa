package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

const defaultRecentOutfits = 3

// OutfitsHandler handles outfit endpoints.
type OutfitsHandler struct {
	Store *wardrobe.Store
}

type outfitDetail struct {
	model.Outfit
	ItemDetails []model.ClothingItem `json:"itemDetails"`
}

type rateRequest struct {
	Rating *int `json:"rating"`
}

type wornRequest struct {
	At time.Time `json:"at"`
}

// List handles GET /api/outfits.
func (h *OutfitsHandler) List(w http.ResponseWriter, r *http.Request) {
	if favorite, _ := strconv.ParseBool(r.URL.Query().Get("favorite")); favorite {
		jsonResponse(w, http.StatusOK, list(h.Store.FavoriteOutfits()))
		return
	}
	jsonResponse(w, http.StatusOK, list(h.Store.Outfits()))
}

// Create handles POST /api/outfits.
func (h *OutfitsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OutfitFields
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outfit, err := h.Store.CreateOutfit(req)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, outfit)
}

// Recent handles GET /api/outfits/recent.
func (h *OutfitsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentOutfits
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	jsonResponse(w, http.StatusOK, list(h.Store.RecentOutfits(limit)))
}

// History handles GET /api/outfits/history.
func (h *OutfitsHandler) History(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, list(h.Store.History()))
}

// Suggestion handles GET /api/outfits/suggestion.
func (h *OutfitsHandler) Suggestion(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	weather := model.Weather{
		Season:    q.Get("season"),
		Condition: q.Get("condition"),
	}
	if v := q.Get("temperature"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid temperature")
			return
		}
		weather.Temperature = t
	}

	outfit, ok := h.Store.SuggestOutfit(weather, q.Get("occasion"))
	if !ok {
		jsonError(w, http.StatusNotFound, "no matching outfit")
		return
	}
	jsonResponse(w, http.StatusOK, outfit)
}

// Get handles GET /api/outfits/{id}. The response includes the outfit's
// items resolved from the catalog.
func (h *OutfitsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	outfit, ok := h.Store.Outfit(id)
	if !ok {
		jsonError(w, http.StatusNotFound, "outfit not found")
		return
	}
	items, _ := h.Store.OutfitItems(id)
	jsonResponse(w, http.StatusOK, outfitDetail{Outfit: outfit, ItemDetails: list(items)})
}

// Update handles PATCH /api/outfits/{id}.
func (h *OutfitsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.OutfitPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outfit, err := h.Store.UpdateOutfit(chi.URLParam(r, "id"), patch)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, outfit)
}

// Delete handles DELETE /api/outfits/{id}.
func (h *OutfitsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.Store.RemoveOutfit(chi.URLParam(r, "id")) {
		jsonError(w, http.StatusNotFound, "outfit not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite handles POST /api/outfits/{id}/favorite.
func (h *OutfitsHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	outfit, err := h.Store.ToggleOutfitFavorite(chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, outfit)
}

// Rate handles PUT /api/outfits/{id}/rating.
func (h *OutfitsHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rating == nil {
		jsonError(w, http.StatusBadRequest, "rating required")
		return
	}

	outfit, err := h.Store.RateOutfit(chi.URLParam(r, "id"), *req.Rating)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, outfit)
}

// MarkWorn handles POST /api/outfits/{id}/worn. The body is optional and
// defaults to now.
func (h *OutfitsHandler) MarkWorn(w http.ResponseWriter, r *http.Request) {
	var req wornRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outfit, err := h.Store.MarkOutfitWorn(chi.URLParam(r, "id"), req.At)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, outfit)
}
