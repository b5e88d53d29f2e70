package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-content/internal/logger"
	"ms-content/internal/stats"
	"ms-content/internal/utils"
)

type Handler struct {
	Service *stats.Service
	Logger  *logger.Logger
}

func NewHandler(service *stats.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/stats/overview", h.Overview)
	r.Get("/stats/bonuses/by-type", h.ClicksByType)
	r.Get("/stats/bonuses/top", h.TopBonuses)
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Service.Overview(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Stats overview: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, overview)
}

func (h *Handler) ClicksByType(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.Service.ClicksByType(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Stats by type: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, metrics)
}

func (h *Handler) TopBonuses(w http.ResponseWriter, r *http.Request) {
	limit := utils.QueryInt(r, "limit", 10)

	metrics, err := h.Service.TopBonuses(r.Context(), limit)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Stats top bonuses: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, metrics)
}
