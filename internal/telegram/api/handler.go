package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-content/internal/logger"
	"ms-content/internal/models"
	"ms-content/internal/telegram"
	"ms-content/internal/utils"
)

type Handler struct {
	Service *telegram.Service
	Logger  *logger.Logger
}

func NewHandler(service *telegram.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/telegram-groups", h.ListPublic)
	r.Get("/telegram-groups/{slug}", h.GetBySlug)
	r.Get("/telegram-groups/{slug}/qr", h.InviteQR)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/telegram-groups", h.ListAdmin)
	r.Post("/telegram-groups", h.Create)
	r.Patch("/telegram-groups/{id}", h.Update)
	r.Delete("/telegram-groups/{id}", h.Delete)
	r.Post("/telegram-groups/reorder", h.Reorder)
}

func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.List(r.Context(), true)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListPublic telegram groups: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, groups)
}

func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.List(r.Context(), false)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListAdmin telegram groups: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, groups)
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	group, err := h.Service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, group)
}

// InviteQR serves a PNG, not the JSON envelope.
func (h *Handler) InviteQR(w http.ResponseWriter, r *http.Request) {
	size := utils.QueryInt(r, "size", 256)

	png, err := h.Service.InviteQR(r.Context(), chi.URLParam(r, "slug"), size)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.TelegramGroupCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create telegram group: %v", err))
		utils.WriteServiceError(w, err)
		return
	}

	h.Logger.Info("API", fmt.Sprintf("Create telegram group: %s (%s)", created.ID, created.Slug))
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.TelegramGroupUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Update telegram group %s: %v", id, err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), id); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.Service.Reorder(r.Context(), req); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}
