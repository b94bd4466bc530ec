package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	"github.com/scprithiviraj/smarthr/internal/domain/auth"
	"github.com/scprithiviraj/smarthr/internal/handler/http/middleware"
	"github.com/scprithiviraj/smarthr/internal/handler/http/response"
)

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	SubmitLateRequest(w http.ResponseWriter, r *http.Request)
	MyLateRequest(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	PendingLateRequests(w http.ResponseWriter, r *http.Request)
	DecideLateRequest(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Recent(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	rec, err := h.attendanceService.PunchIn(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Punched in", rec)
}

func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	// The body is optional; an empty body means no half-day confirmation.
	var req attendance.PunchOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rec, err := h.attendanceService.PunchOut(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Punched out", rec)
}

func (h *attendanceHandlerImpl) SubmitLateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req attendance.LateRequestSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	late, err := h.attendanceService.SubmitLateRequest(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Late request submitted", late)
}

func (h *attendanceHandlerImpl) MyLateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	late, err := h.attendanceService.MyLateRequest(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, late)
}

func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	recs, err := h.attendanceService.MyHistory(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, recs)
}

func (h *attendanceHandlerImpl) PendingLateRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.attendanceService.PendingLateRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, reqs)
}

func (h *attendanceHandlerImpl) DecideLateRequest(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	requestID := chi.URLParam(r, "id")

	var req struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	decided, err := h.attendanceService.DecideLateRequest(r.Context(), adminID, requestID, attendance.Decision(req.Decision))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Late request decided", decided)
}

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.attendanceService.All(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, recs)
}

func (h *attendanceHandlerImpl) Recent(w http.ResponseWriter, r *http.Request) {
	recs, err := h.attendanceService.Recent(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, recs)
}
