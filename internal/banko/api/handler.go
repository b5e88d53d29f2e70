package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-content/internal/banko"
	"ms-content/internal/logger"
	"ms-content/internal/models"
	"ms-content/internal/utils"
)

type Handler struct {
	Service *banko.Service
	Logger  *logger.Logger
}

func NewHandler(service *banko.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/banko-coupons", h.ListPublic)
	r.Get("/banko-coupons/today", h.Today)
	r.Get("/banko-coupons/{slug}", h.GetBySlug)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/banko-coupons", h.ListAdmin)
	r.Post("/banko-coupons", h.Create)
	r.Patch("/banko-coupons/{id}", h.Update)
	r.Delete("/banko-coupons/{id}", h.Delete)
}

// couponView decorates a coupon with its computed combined odds.
type couponView struct {
	models.BankoCoupon
	TotalOdds float64 `json:"totalOdds"`
}

func withOdds(coupons []models.BankoCoupon) []couponView {
	views := make([]couponView, len(coupons))
	for i, c := range coupons {
		views[i] = couponView{BankoCoupon: c, TotalOdds: c.TotalOdds()}
	}
	return views
}

func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.Service.List(r.Context(), true)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListPublic coupons: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, withOdds(coupons))
}

func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.Service.Today(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Today coupons: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, withOdds(coupons))
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	coupon, err := h.Service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, couponView{BankoCoupon: *coupon, TotalOdds: coupon.TotalOdds()})
}

func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.Service.List(r.Context(), false)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, withOdds(coupons))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.BankoCouponCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create coupon: %v", err))
		utils.WriteServiceError(w, err)
		return
	}

	h.Logger.Info("API", fmt.Sprintf("Create coupon: %s (%s)", created.ID, created.Slug))
	utils.WriteJSON(w, http.StatusCreated, couponView{BankoCoupon: *created, TotalOdds: created.TotalOdds()})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.BankoCouponUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Update coupon %s: %v", id, err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, couponView{BankoCoupon: *updated, TotalOdds: updated.TotalOdds()})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), id); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
