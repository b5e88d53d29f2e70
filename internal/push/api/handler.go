package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-content/internal/logger"
	"ms-content/internal/models"
	"ms-content/internal/push"
	"ms-content/internal/utils"
)

type Handler struct {
	Service *push.Service
	Logger  *logger.Logger
}

func NewHandler(service *push.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/push/subscribe", h.Subscribe)
	r.Post("/push/unsubscribe", h.Unsubscribe)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/push/notifications", h.List)
	r.Post("/push/notifications", h.Compose)
	r.Post("/push/notifications/{id}/send", h.Send)
	r.Delete("/push/notifications/{id}", h.Delete)
	r.Get("/push/subscribers/count", h.SubscriberCount)
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sub, err := h.Service.Subscribe(r.Context(), req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, sub)
}

func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.Service.Unsubscribe(r.Context(), req.Endpoint); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.Service.ListNotifications(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("List notifications: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, notifications)
}

func (h *Handler) Compose(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationComposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.Service.Compose(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Compose notification: %v", err))
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sent, err := h.Service.Send(r.Context(), id)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Send notification %s: %v", id, err))
		utils.WriteServiceError(w, err)
		return
	}

	h.Logger.Info("API", fmt.Sprintf("Dispatched notification %s", id))
	utils.WriteJSON(w, http.StatusOK, sent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) SubscriberCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.SubscriberCount(r.Context())
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}
