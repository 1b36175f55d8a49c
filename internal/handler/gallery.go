package handler

import (
	"log/slog"
	"net/http"

	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
	"github.com/ghiffarsabda/kormimvp/internal/schema"
)

type GalleryHandler struct {
	repo   repository.GalleryRepository
	logger *slog.Logger
}

func NewGalleryHandler(repo repository.GalleryRepository, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{repo: repo, logger: logger}
}

// HandleList handles GET /api/gallery?category=. A non-empty category
// filters case-insensitively.
func (h *GalleryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := repository.GalleryFilter{Category: r.URL.Query().Get("category")}

	items, err := h.repo.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, h.logger, err, "Failed to fetch gallery items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *GalleryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	getOne(w, r, h.logger, h.repo.GetByID, "Failed to fetch gallery item")
}

func (h *GalleryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g, ok := createOne[model.GalleryItem, schema.GalleryItemInput](w, r, h.logger, h.repo.Create,
		"Failed to create gallery item")
	if !ok {
		return
	}
	h.logger.Info("gallery item created", slog.Int("id", g.ID), slog.String("category", g.Category))
	writeJSON(w, http.StatusCreated, g)
}

func (h *GalleryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	replaceOne[model.GalleryItem, schema.GalleryItemInput](w, r, h.logger, h.repo.GetByID, h.repo.Update,
		func(g *model.GalleryItem, id int) { g.ID = id },
		"Failed to update gallery item")
}

func (h *GalleryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleteOne(w, r, h.logger, h.repo.Delete, "Failed to delete gallery item")
}
