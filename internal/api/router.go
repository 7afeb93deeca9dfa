package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/erazemk/garderoba/internal/wardrobe"
)

// Options configures the router.
type Options struct {
	// CORSOrigins lists origins allowed to call the API. Empty allows any.
	CORSOrigins []string
	// Rate is the per-client request rate in requests per second. Zero
	// disables rate limiting.
	Rate float64
	// Burst is the per-client burst size. Defaults to twice the rate.
	Burst int
	// Recorder, when set, receives the status and latency of each request.
	Recorder RequestRecorder
	// Metrics, when set, is served on /metrics.
	Metrics http.Handler
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(s *wardrobe.Store, opts Options) http.Handler {
	items := &ItemsHandler{Store: s}
	outfits := &OutfitsHandler{Store: s}
	selection := &SelectionHandler{Store: s}
	snapshot := &SnapshotHandler{Store: s}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(LoggingMiddleware(opts.Recorder))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler(s))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		if opts.Rate > 0 {
			burst := opts.Burst
			if burst == 0 {
				burst = int(2 * opts.Rate)
			}
			r.Use(NewRateLimiter(opts.Rate, burst).Middleware)
		}

		r.Get("/snapshot", snapshot.Get)

		r.Route("/items", func(r chi.Router) {
			r.Get("/", items.List)
			r.Post("/", items.Create)
			r.Get("/facets", items.Facets)
			r.Get("/categories", items.Categories)
			r.Get("/{id}", items.Get)
			r.Patch("/{id}", items.Update)
			r.Delete("/{id}", items.Delete)
			r.Post("/{id}/favorite", items.ToggleFavorite)
		})

		r.Route("/outfits", func(r chi.Router) {
			r.Get("/", outfits.List)
			r.Post("/", outfits.Create)
			r.Get("/recent", outfits.Recent)
			r.Get("/history", outfits.History)
			r.Get("/suggestion", outfits.Suggestion)
			r.Get("/{id}", outfits.Get)
			r.Patch("/{id}", outfits.Update)
			r.Delete("/{id}", outfits.Delete)
			r.Post("/{id}/favorite", outfits.ToggleFavorite)
			r.Put("/{id}/rating", outfits.Rate)
			r.Post("/{id}/worn", outfits.MarkWorn)
		})

		r.Route("/selection", func(r chi.Router) {
			r.Get("/", selection.List)
			r.Post("/", selection.Add)
			r.Delete("/", selection.Clear)
			r.Delete("/{id}", selection.Remove)
			r.Post("/outfit", selection.CreateOutfit)
		})

		r.Get("/quiz", quizSteps)
		r.Post("/quiz/profile", quizProfile)
	})

	return r
}

func healthHandler(s *wardrobe.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"version": s.Version(),
		})
	}
}
