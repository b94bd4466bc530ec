package http

import (
	"net/http"

	"github.com/scprithiviraj/smarthr/internal/domain/auth"
	"github.com/scprithiviraj/smarthr/internal/domain/dashboard"
	"github.com/scprithiviraj/smarthr/internal/handler/http/middleware"
	"github.com/scprithiviraj/smarthr/internal/handler/http/response"
)

type DashboardHandler interface {
	MyStats(w http.ResponseWriter, r *http.Request)
	AdminStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *dashboardHandlerImpl) MyStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	stats, err := h.dashboardService.MyStats(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

func (h *dashboardHandlerImpl) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.AdminStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}
