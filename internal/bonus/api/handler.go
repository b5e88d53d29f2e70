package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-content/internal/bonus"
	"ms-content/internal/logger"
	"ms-content/internal/models"
	"ms-content/internal/utils"
)

type Handler struct {
	Service  *bonus.Service
	Logger   *logger.Logger
	PageSize int
}

func NewHandler(service *bonus.Service, log *logger.Logger, pageSize int) *Handler {
	return &Handler{Service: service, Logger: log, PageSize: pageSize}
}

// RegisterPublicRoutes mounts the site-facing endpoints.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/bonuses", h.ListPublic)
	r.Get("/bonuses/{slug}", h.GetBySlug)
	r.Post("/bonuses/{id}/click", h.RecordClick)
}

// RegisterAdminRoutes mounts the moderation/management endpoints; the caller
// wraps them in auth middleware.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/bonuses", h.ListAdmin)
	r.Post("/bonuses", h.Create)
	r.Patch("/bonuses/{id}", h.Update)
	r.Delete("/bonuses/{id}", h.Delete)
	r.Get("/bonuses/pending", h.Pending)
	r.Patch("/bonuses/bulk", h.BulkModerate)
	r.Post("/bonuses/reorder", h.Reorder)
}

func filterFromQuery(r *http.Request) models.BonusFilter {
	return models.BonusFilter{
		Query:        r.URL.Query().Get("q"),
		BonusType:    r.URL.Query().Get("bonusType"),
		GameCategory: r.URL.Query().Get("gameCategory"),
		Active:       utils.QueryBool(r, "active"),
		Featured:     utils.QueryBool(r, "featured"),
		Approved:     utils.QueryBool(r, "approved"),
		MinAmount:    utils.QueryFloat(r, "minAmount"),
		MaxAmount:    utils.QueryFloat(r, "maxAmount"),
	}
}

func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	// The public surface never sees unapproved rows, whatever the query says.
	filter.Approved = nil

	bonuses, err := h.Service.ListPublic(r.Context(), filter)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListPublic bonuses: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, bonuses)
}

func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	bonuses, err := h.Service.List(r.Context(), filterFromQuery(r))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListAdmin bonuses: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, bonuses)
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	b, err := h.Service.GetBySlug(r.Context(), slug)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.BonusCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create bonus: %v", err))
		utils.WriteServiceError(w, err)
		return
	}

	h.Logger.Info("API", fmt.Sprintf("Create bonus: %s (%s)", created.ID, created.Slug))
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.BonusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Update bonus %s: %v", id, err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Delete bonus %s: %v", id, err))
		utils.WriteServiceError(w, err)
		return
	}

	h.Logger.Info("API", fmt.Sprintf("Delete bonus: %s", id))
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	page := utils.QueryInt(r, "page", 1)

	result, err := h.Service.Pending(r.Context(), page, h.PageSize)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Pending bonuses: %v", err))
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
		h.Logger.Error("API", fmt.Sprintf("BulkModerate bonuses: %v", err))
		utils.WriteServiceError(w, err)
		return
	}

	h.Logger.LogModeration(req.Action, "bonus", len(result.Succeeded))
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.Service.Reorder(r.Context(), req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Reorder bonuses: %v", err))
		utils.WriteServiceError(w, err)
		return
	}

	h.Logger.Info("API", fmt.Sprintf("Reorder bonuses: %d item(s)", len(req.OrderedIDs)))
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

func (h *Handler) RecordClick(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.RecordClick(r.Context(), id); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}
