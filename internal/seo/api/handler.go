package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-content/internal/logger"
	"ms-content/internal/models"
	"ms-content/internal/seo"
	"ms-content/internal/utils"
)

type Handler struct {
	Service *seo.Service
	Logger  *logger.Logger
}

func NewHandler(service *seo.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	// The page path contains slashes, so it travels as a query parameter.
	r.Get("/seo", h.ByPath)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/seo", h.List)
	r.Post("/seo", h.Create)
	r.Patch("/seo/{id}", h.Update)
	r.Delete("/seo/{id}", h.Delete)
}

func (h *Handler) ByPath(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		utils.WriteError(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	setting, err := h.Service.ByPath(r.Context(), path)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, setting)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("List seo settings: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, settings)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SeoSettingCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create seo setting: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.SeoSettingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
