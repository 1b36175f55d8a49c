package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
	"github.com/ghiffarsabda/kormimvp/internal/schema"
)

// OrganizationHandler serves the sports club directory.
type OrganizationHandler struct {
	repo   repository.OrganizationRepository
	logger *slog.Logger
}

func NewOrganizationHandler(repo repository.OrganizationRepository, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{repo: repo, logger: logger}
}

// HandleList handles GET /api/organizations?categoryId=&isOkb=.
//
// At most one filter applies. A numeric categoryId wins; a non-numeric one is
// ignored. Otherwise a present isOkb filters on isOkb == "true", so any other
// value (including "") lists unaffiliated clubs.
func (h *OrganizationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter repository.OrganizationFilter
	if id, err := strconv.Atoi(query.Get("categoryId")); err == nil {
		filter.SportCategoryID = &id
	} else if query.Has("isOkb") {
		isOkb := query.Get("isOkb") == "true"
		filter.IsOkb = &isOkb
	}

	orgs, err := h.repo.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, h.logger, err, "Failed to fetch organizations")
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

// HandleGet handles GET /api/organizations/{id}.
func (h *OrganizationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	getOne(w, r, h.logger, h.repo.GetByID, "Failed to fetch organization")
}

// HandleCreate handles POST /api/organizations.
func (h *OrganizationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	org, ok := createOne[model.Organization, schema.OrganizationInput](w, r, h.logger, h.repo.Create,
		"Failed to create organization")
	if !ok {
		return
	}
	h.logger.Info("organization created",
		slog.Int("id", org.ID),
		slog.String("name", org.Name),
		slog.Bool("isOkb", org.IsOkb),
	)
	writeJSON(w, http.StatusCreated, org)
}

// HandleUpdate handles PUT /api/admin/organizations/{id}.
func (h *OrganizationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	replaceOne[model.Organization, schema.OrganizationInput](w, r, h.logger, h.repo.GetByID, h.repo.Update,
		func(o *model.Organization, id int) { o.ID = id },
		"Failed to update organization")
}

// HandleDelete handles DELETE /api/admin/organizations/{id}.
func (h *OrganizationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleteOne(w, r, h.logger, h.repo.Delete, "Failed to delete organization")
}
