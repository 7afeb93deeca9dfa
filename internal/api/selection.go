package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// SelectionHandler handles the staged item selection used to build outfits.
type SelectionHandler struct {
	Store *wardrobe.Store
}

type selectRequest struct {
	ItemID string `json:"item_id"`
}

type selectionOutfitRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Occasion    string        `json:"occasion"`
	Weather     model.Weather `json:"weather"`
}

// List handles GET /api/selection.
func (h *SelectionHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, list(h.Store.Selection()))
}

// Add handles POST /api/selection.
func (h *SelectionHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID == "" {
		jsonError(w, http.StatusBadRequest, "item_id required")
		return
	}

	if err := h.Store.SelectItem(req.ItemID); err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, list(h.Store.Selection()))
}

// Remove handles DELETE /api/selection/{id}. Removing an item that is not
// selected is not an error.
func (h *SelectionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.Store.DeselectItem(chi.URLParam(r, "id"))
	jsonResponse(w, http.StatusOK, list(h.Store.Selection()))
}

// Clear handles DELETE /api/selection.
func (h *SelectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Store.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

// CreateOutfit handles POST /api/selection/outfit.
func (h *SelectionHandler) CreateOutfit(w http.ResponseWriter, r *http.Request) {
	var req selectionOutfitRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outfit, err := h.Store.CreateOutfitFromSelection(model.OutfitFields{
		Name:        req.Name,
		Description: req.Description,
		Occasion:    req.Occasion,
		Weather:     req.Weather,
	})
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, outfit)
}
