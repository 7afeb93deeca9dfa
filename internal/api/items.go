package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// ItemsHandler handles clothing item endpoints.
type ItemsHandler struct {
	Store *wardrobe.Store
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	favorite, _ := strconv.ParseBool(q.Get("favorite"))
	filter := model.ItemFilter{
		Category:     q.Get("category"),
		Color:        q.Get("color"),
		Season:       q.Get("season"),
		Occasion:     q.Get("occasion"),
		Brand:        q.Get("brand"),
		Query:        q.Get("q"),
		FavoriteOnly: favorite,
	}
	jsonResponse(w, http.StatusOK, list(h.Store.FilterItems(filter)))
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ItemFields
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, h.Store.AddItem(req))
}

// Facets handles GET /api/items/facets.
func (h *ItemsHandler) Facets(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Store.Facets())
}

// Categories handles GET /api/items/categories.
func (h *ItemsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Store.CategoryCounts())
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.Store.Item(chi.URLParam(r, "id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PATCH /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.UpdateItem(chi.URLParam(r, "id"), patch)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}. The item is also removed from
// every outfit and from the selection.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.Store.RemoveItem(chi.URLParam(r, "id")) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite handles POST /api/items/{id}/favorite.
func (h *ItemsHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.ToggleItemFavorite(chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}
