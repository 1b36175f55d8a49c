package handler

import (
	"log/slog"
	"net/http"

	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
	"github.com/ghiffarsabda/kormimvp/internal/schema"
)

// SubmissionHandler takes contact messages and join requests from the public
// site. Visitors get back only {"success": true, "id": n}; reading the
// submissions is admin-only.
type SubmissionHandler struct {
	messages     repository.MessageRepository
	joinRequests repository.JoinRequestRepository
	logger       *slog.Logger
}

func NewSubmissionHandler(
	messages repository.MessageRepository,
	joinRequests repository.JoinRequestRepository,
	logger *slog.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{messages: messages, joinRequests: joinRequests, logger: logger}
}

// HandleContact handles POST /api/contact.
func (h *SubmissionHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	msg, ok := createOne[model.Message, schema.MessageInput](w, r, h.logger, h.messages.Create,
		"Failed to send message")
	if !ok {
		return
	}
	h.logger.Info("contact message received", slog.Int("id", msg.ID), slog.String("subject", msg.Subject))
	writeJSON(w, http.StatusCreated, SuccessResponse{Success: true, ID: msg.ID})
}

// HandleJoin handles POST /api/join.
func (h *SubmissionHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	req, ok := createOne[model.JoinRequest, schema.JoinRequestInput](w, r, h.logger, h.joinRequests.Create,
		"Failed to submit join request")
	if !ok {
		return
	}
	h.logger.Info("join request received",
		slog.Int("id", req.ID),
		slog.Int("sportCategoryId", req.SportCategoryID),
	)
	writeJSON(w, http.StatusCreated, SuccessResponse{Success: true, ID: req.ID})
}

// HandleListMessages handles GET /api/admin/messages.
func (h *SubmissionHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, h.logger, h.messages.List, "Failed to fetch messages")
}

// HandleGetMessage handles GET /api/admin/messages/{id}.
func (h *SubmissionHandler) HandleGetMessage(w http.ResponseWriter, r *http.Request) {
	getOne(w, r, h.logger, h.messages.GetByID, "Failed to fetch message")
}

// HandleDeleteMessage handles DELETE /api/admin/messages/{id}.
func (h *SubmissionHandler) HandleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	deleteOne(w, r, h.logger, h.messages.Delete, "Failed to delete message")
}

// HandleListJoinRequests handles GET /api/admin/join-requests.
func (h *SubmissionHandler) HandleListJoinRequests(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, h.logger, h.joinRequests.List, "Failed to fetch join requests")
}

// HandleGetJoinRequest handles GET /api/admin/join-requests/{id}.
func (h *SubmissionHandler) HandleGetJoinRequest(w http.ResponseWriter, r *http.Request) {
	getOne(w, r, h.logger, h.joinRequests.GetByID, "Failed to fetch join request")
}

// HandleDeleteJoinRequest handles DELETE /api/admin/join-requests/{id}.
func (h *SubmissionHandler) HandleDeleteJoinRequest(w http.ResponseWriter, r *http.Request) {
	deleteOne(w, r, h.logger, h.joinRequests.Delete, "Failed to delete join request")
}
