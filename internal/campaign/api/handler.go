package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-content/internal/campaign"
	"ms-content/internal/logger"
	"ms-content/internal/models"
	"ms-content/internal/utils"
)

type Handler struct {
	Service  *campaign.Service
	Logger   *logger.Logger
	PageSize int
}

func NewHandler(service *campaign.Service, log *logger.Logger, pageSize int) *Handler {
	return &Handler{Service: service, Logger: log, PageSize: pageSize}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/campaigns", h.ListPublic)
	r.Get("/campaigns/{slug}", h.GetBySlug)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/campaigns", h.ListAdmin)
	r.Post("/campaigns", h.Create)
	r.Patch("/campaigns/{id}", h.Update)
	r.Delete("/campaigns/{id}", h.Delete)
	r.Get("/campaigns/pending", h.Pending)
	r.Patch("/campaigns/bulk", h.BulkModerate)
	r.Post("/campaigns/reorder", h.Reorder)
}

func filterFromQuery(r *http.Request) models.CampaignFilter {
	return models.CampaignFilter{
		Query:    r.URL.Query().Get("q"),
		Active:   utils.QueryBool(r, "active"),
		Featured: utils.QueryBool(r, "featured"),
		Approved: utils.QueryBool(r, "approved"),
	}
}

func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	filter.Approved = nil

	campaigns, err := h.Service.ListPublic(r.Context(), filter)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListPublic campaigns: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, campaigns)
}

func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Service.List(r.Context(), filterFromQuery(r))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListAdmin campaigns: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, campaigns)
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CampaignCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create campaign: %v", err))
		utils.WriteServiceError(w, err)
		return
	}

	h.Logger.Info("API", fmt.Sprintf("Create campaign: %s (%s)", created.ID, created.Slug))
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.CampaignUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Update campaign %s: %v", id, err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Delete campaign %s: %v", id, err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	page := utils.QueryInt(r, "page", 1)

	result, err := h.Service.Pending(r.Context(), page, h.PageSize)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Pending campaigns: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) BulkModerate(w http.ResponseWriter, r *http.Request) {
	var req models.BulkModerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.Service.BulkModerate(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("BulkModerate campaigns: %v", err))
		utils.WriteServiceError(w, err)
		return
	}

	h.Logger.LogModeration(req.Action, "campaign", len(result.Succeeded))
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.Service.Reorder(r.Context(), req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Reorder campaigns: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}
