package handler

import (
	"log/slog"
	"net/http"

	"github.com/ghiffarsabda/kormimvp/internal/repository"
)

type SeedHandler struct {
	store  repository.Store
	logger *slog.Logger
}

func NewSeedHandler(store repository.Store, logger *slog.Logger) *SeedHandler {
	return &SeedHandler{store: store, logger: logger}
}

// HandleInitialize handles POST /api/initialize-data.
//
// Every call appends the full demo dataset again under new ids; calling it
// twice leaves two copies.
func (h *SeedHandler) HandleInitialize(w http.ResponseWriter, r *http.Request) {
	counts, err := repository.Seed(r.Context(), h.store)
	if err != nil {
		respondError(w, r, h.logger, err, "Failed to initialize data")
		return
	}

	h.logger.Info("demo data seeded",
		slog.Int("sportCategories", counts.SportCategories),
		slog.Int("organizations", counts.Organizations),
		slog.Int("events", counts.Events),
		slog.Int("news", counts.News),
		slog.Int("gallery", counts.Gallery),
	)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Data initialized successfully"})
}
