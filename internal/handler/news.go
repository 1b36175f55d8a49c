package handler

import (
	"log/slog"
	"net/http"

	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
	"github.com/ghiffarsabda/kormimvp/internal/schema"
)

// NewsHandler is the only public kind with update and delete routes.
type NewsHandler struct {
	repo   repository.NewsRepository
	logger *slog.Logger
}

func NewNewsHandler(repo repository.NewsRepository, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{repo: repo, logger: logger}
}

// HandleList handles GET /api/news, newest date first.
func (h *NewsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, h.logger, h.repo.List, "Failed to fetch news")
}

// HandleGet handles GET /api/news/{id}.
func (h *NewsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	getOne(w, r, h.logger, h.repo.GetByID, "Failed to fetch news item")
}

// HandleCreate handles POST /api/news.
func (h *NewsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	n, ok := createOne[model.News, schema.NewsInput](w, r, h.logger, h.repo.Create, "Failed to create news item")
	if !ok {
		return
	}
	h.logger.Info("news item created", slog.Int("id", n.ID), slog.String("title", n.Title))
	writeJSON(w, http.StatusCreated, n)
}

// HandleUpdate handles PATCH /api/news/{id}. Despite the verb this is a full
// replace; a missing id is reported before the body is validated.
func (h *NewsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	replaceOne[model.News, schema.NewsInput](w, r, h.logger, h.repo.GetByID, h.repo.Update,
		func(n *model.News, id int) { n.ID = id },
		"Failed to update news item")
}

// HandleDelete handles DELETE /api/news/{id} and answers {"success": true}.
func (h *NewsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleteOne(w, r, h.logger, h.repo.Delete, "Failed to delete news item")
}
