package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scprithiviraj/smarthr/internal/domain/auth"
	"github.com/scprithiviraj/smarthr/internal/domain/leave"
	"github.com/scprithiviraj/smarthr/internal/handler/http/middleware"
	"github.com/scprithiviraj/smarthr/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	MyLeaves(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req leave.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.Apply(r.Context(), userID, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", leave.ToResponse(created))
}

func (h *leaveHandlerImpl) MyLeaves(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	leaves, err := h.leaveService.MyLeaves(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.ToResponses(leaves))
}

func (h *leaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	entries, err := h.leaveService.Balance(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}

func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	leaveID := chi.URLParam(r, "id")

	cancelled, err := h.leaveService.Cancel(r.Context(), userID, leaveID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request cancelled", leave.ToResponse(cancelled))
}

func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.leaveService.All(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.ToResponses(leaves))
}

func (h *leaveHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.leaveService.Pending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.ToResponses(leaves))
}

func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	leaveID := chi.URLParam(r, "id")

	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	decided, err := h.leaveService.Decide(r.Context(), adminID, leaveID, leave.Decision(req.Decision))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request decided", leave.ToResponse(decided))
}
