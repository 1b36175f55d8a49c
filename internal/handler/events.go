package handler

import (
	"log/slog"
	"net/http"

	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
	"github.com/ghiffarsabda/kormimvp/internal/schema"
)

type EventHandler struct {
	repo   repository.EventRepository
	logger *slog.Logger
}

func NewEventHandler(repo repository.EventRepository, logger *slog.Logger) *EventHandler {
	return &EventHandler{repo: repo, logger: logger}
}

// HandleList handles GET /api/events, newest date first.
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, h.logger, h.repo.List, "Failed to fetch events")
}

func (h *EventHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	getOne(w, r, h.logger, h.repo.GetByID, "Failed to fetch event")
}

func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	e, ok := createOne[model.Event, schema.EventInput](w, r, h.logger, h.repo.Create, "Failed to create event")
	if !ok {
		return
	}
	h.logger.Info("event created", slog.Int("id", e.ID), slog.String("date", e.Date.String()))
	writeJSON(w, http.StatusCreated, e)
}

func (h *EventHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	replaceOne[model.Event, schema.EventInput](w, r, h.logger, h.repo.GetByID, h.repo.Update,
		func(e *model.Event, id int) { e.ID = id },
		"Failed to update event")
}

func (h *EventHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleteOne(w, r, h.logger, h.repo.Delete, "Failed to delete event")
}
