package api

import (
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/blake2b"

	"github.com/erazemk/garderoba/internal/wardrobe"
)

// SnapshotHandler serves the whole wardrobe state in one response, for
// views that re-render from a single snapshot.
type SnapshotHandler struct {
	Store *wardrobe.Store
}

// Get handles GET /api/snapshot. The ETag is a hash of the body, so clients
// polling with If-None-Match get 304 until something changes.
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(h.Store.Snapshot())
	if err != nil {
		slog.Error("encoding snapshot", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	sum := blake2b.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`
	w.Header().Set("ETag", etag)

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
