package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/laterequest"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LateRequestHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	MyStatus(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type lateRequestHandlerImpl struct {
	lateRequestService laterequest.LateRequestService
}

func NewLateRequestHandler(lateRequestService laterequest.LateRequestService) LateRequestHandler {
	return &lateRequestHandlerImpl{
		lateRequestService: lateRequestService,
	}
}

// Create implements LateRequestHandler.
func (h *lateRequestHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req laterequest.CreateLateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.lateRequestService.Request(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Late request submitted successfully", result)
}

// MyStatus implements LateRequestHandler. Data is null when no request was made today.
func (h *lateRequestHandlerImpl) MyStatus(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.lateRequestService.GetMine(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result == nil {
		response.SuccessWithMessage(w, "No late request for today", nil)
		return
	}

	response.Success(w, result)
}

// Pending implements LateRequestHandler.
func (h *lateRequestHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	result, err := h.lateRequestService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements LateRequestHandler.
func (h *lateRequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.lateRequestService.Approve, "Late request approved")
}

// Reject implements LateRequestHandler.
func (h *lateRequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.lateRequestService.Reject, "Late request rejected")
}

type lateDecisionFunc func(ctx context.Context, id string, adminID string) (laterequest.LateRequestResponse, error)

func (h *lateRequestHandlerImpl) decide(w http.ResponseWriter, r *http.Request, fn lateDecisionFunc, message string) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Late request ID is required", nil)
		return
	}

	result, err := fn(r.Context(), id, claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("late request decided", "id", id, "status", result.Status, "admin_id", claims.UserID)
	response.SuccessWithMessage(w, message, result)
}
