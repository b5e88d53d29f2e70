package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-content/internal/auth"
	"ms-content/internal/logger"
	"ms-content/internal/models"
	"ms-content/internal/review"
	"ms-content/internal/utils"
)

type Handler struct {
	Service  *review.Service
	Logger   *logger.Logger
	PageSize int
}

func NewHandler(service *review.Service, log *logger.Logger, pageSize int) *Handler {
	return &Handler{Service: service, Logger: log, PageSize: pageSize}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/brands", h.ListBrands)
	r.Get("/brands/{slug}", h.GetBrand)
	r.Get("/brands/{slug}/reviews", h.BrandReviews)
	r.Post("/reviews", h.Submit)
	r.Post("/reviews/{id}/vote", h.Vote)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/brands", h.ListBrandsAdmin)
	r.Post("/brands", h.CreateBrand)
	r.Patch("/brands/{id}", h.UpdateBrand)
	r.Delete("/brands/{id}", h.DeleteBrand)
	r.Get("/reviews/pending", h.Pending)
	r.Patch("/reviews/bulk", h.Moderate)
	r.Delete("/reviews/{id}", h.Delete)
}

func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Service.ListBrands(r.Context(), true)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListBrands: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, brands)
}

func (h *Handler) ListBrandsAdmin(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Service.ListBrands(r.Context(), false)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListBrandsAdmin: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, brands)
}

func (h *Handler) GetBrand(w http.ResponseWriter, r *http.Request) {
	brand, err := h.Service.BrandBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, brand)
}

func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req models.BrandCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	brand, err := h.Service.CreateBrand(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateBrand: %v", err))
		utils.WriteServiceError(w, err)
		return
	}

	h.Logger.Info("API", fmt.Sprintf("Create brand: %s (%s)", brand.ID, brand.Slug))
	utils.WriteJSON(w, http.StatusCreated, brand)
}

func (h *Handler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.BrandUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	brand, err := h.Service.UpdateBrand(r.Context(), id, req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateBrand %s: %v", id, err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, brand)
}

func (h *Handler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Service.DeleteBrand(r.Context(), id); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) BrandReviews(w http.ResponseWriter, r *http.Request) {
	brand, err := h.Service.BrandBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	reviews, err := h.Service.ApprovedByBrand(r.Context(), brand.ID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.Service.Submit(r.Context(), req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.ReviewVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	caller := auth.CallerIdentity(r)
	updated, err := h.Service.Vote(r.Context(), id, caller, req.Direction)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	page := utils.QueryInt(r, "page", 1)

	result, err := h.Service.Pending(r.Context(), page, h.PageSize)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Pending reviews: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) {
	var req models.BulkModerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.Service.Moderate(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Moderate reviews: %v", err))
		utils.WriteServiceError(w, err)
		return
	}

	h.Logger.LogModeration(req.Action, "review", len(result.Succeeded))
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), id); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
