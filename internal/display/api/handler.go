package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-content/internal/display"
	"ms-content/internal/logger"
	"ms-content/internal/models"
	"ms-content/internal/utils"
)

type Handler struct {
	Service *display.Service
	Logger  *logger.Logger
}

func NewHandler(service *display.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/carousel", h.ListSlides)
	r.Get("/marquee", h.ListLogos)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/carousel", h.ListSlidesAdmin)
	r.Post("/carousel", h.CreateSlide)
	r.Patch("/carousel/{id}", h.UpdateSlide)
	r.Delete("/carousel/{id}", h.DeleteSlide)
	r.Post("/carousel/reorder", h.ReorderSlides)

	r.Get("/marquee", h.ListLogosAdmin)
	r.Post("/marquee", h.CreateLogo)
	r.Patch("/marquee/{id}", h.UpdateLogo)
	r.Delete("/marquee/{id}", h.DeleteLogo)
	r.Post("/marquee/reorder", h.ReorderLogos)
}

func (h *Handler) ListSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.Service.ListSlides(r.Context(), true)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListSlides: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, slides)
}

func (h *Handler) ListSlidesAdmin(w http.ResponseWriter, r *http.Request) {
	slides, err := h.Service.ListSlides(r.Context(), false)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, slides)
}

func (h *Handler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	var req models.SlideCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.Service.CreateSlide(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateSlide: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.SlideUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.Service.UpdateSlide(r.Context(), id, req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteSlide(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ReorderSlides(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.Service.ReorderSlides(r.Context(), req); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

func (h *Handler) ListLogos(w http.ResponseWriter, r *http.Request) {
	logos, err := h.Service.ListLogos(r.Context(), true)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListLogos: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, logos)
}

func (h *Handler) ListLogosAdmin(w http.ResponseWriter, r *http.Request) {
	logos, err := h.Service.ListLogos(r.Context(), false)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, logos)
}

func (h *Handler) CreateLogo(w http.ResponseWriter, r *http.Request) {
	var req models.LogoCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.Service.CreateLogo(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateLogo: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateLogo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.LogoUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.Service.UpdateLogo(r.Context(), id, req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteLogo(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ReorderLogos(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.Service.ReorderLogos(r.Context(), req); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}
