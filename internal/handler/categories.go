package handler

import (
	"log/slog"
	"net/http"

	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
	"github.com/ghiffarsabda/kormimvp/internal/schema"
)

// SportCategoryHandler serves /api/sport-categories. Creating, replacing and
// deleting categories is admin-only; reading is public.
type SportCategoryHandler struct {
	repo   repository.SportCategoryRepository
	logger *slog.Logger
}

func NewSportCategoryHandler(repo repository.SportCategoryRepository, logger *slog.Logger) *SportCategoryHandler {
	return &SportCategoryHandler{repo: repo, logger: logger}
}

// HandleList handles GET /api/sport-categories.
func (h *SportCategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, h.logger, h.repo.List, "Failed to fetch sport categories")
}

// HandleGet handles GET /api/sport-categories/{id}.
func (h *SportCategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	getOne(w, r, h.logger, h.repo.GetByID, "Failed to fetch sport category")
}

// HandleCreate handles POST /api/admin/sport-categories.
func (h *SportCategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	c, ok := createOne[model.SportCategory, schema.SportCategoryInput](w, r, h.logger, h.repo.Create,
		"Failed to create sport category")
	if !ok {
		return
	}
	h.logger.Info("sport category created", slog.Int("id", c.ID), slog.String("name", c.Name))
	writeJSON(w, http.StatusCreated, c)
}

// HandleUpdate handles PUT /api/admin/sport-categories/{id}.
func (h *SportCategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	replaceOne[model.SportCategory, schema.SportCategoryInput](w, r, h.logger, h.repo.GetByID, h.repo.Update,
		func(c *model.SportCategory, id int) { c.ID = id },
		"Failed to update sport category")
}

// HandleDelete handles DELETE /api/admin/sport-categories/{id}. Organizations
// keep pointing at a deleted category id; nothing cascades.
func (h *SportCategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleteOne(w, r, h.logger, h.repo.Delete, "Failed to delete sport category")
}
