package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adr1ann32323/restorApp/internal/models"
	"github.com/adr1ann32323/restorApp/internal/store"
)

type OrderHandler struct {
	Store *store.Store
}

var validStatuses = map[models.OrderStatus]bool{
	models.StatusPending:   true,
	models.StatusPreparing: true,
	models.StatusDelivered: true,
	models.StatusCancelled: true,
}

// List returns the caller's orders, or every order for an ADMIN. The
// optional status/startDate/endDate query params each narrow the result.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	filters := &models.OrderFilters{
		Status:    models.OrderStatus(r.URL.Query().Get("status")),
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}
	if filters.Status != "" && !validStatuses[filters.Status] {
		respondError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	userID := claims.UserID
	if claims.Role == models.RoleAdmin {
		userID = 0 // no scoping
	}

	orders, err := h.Store.ListOrders(userID, filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.Store.GetOrder(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}
	if claims.Role != models.RoleAdmin && order.UserID != claims.UserID {
		respondError(w, http.StatusForbidden, "not your order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Store.CreateOrder(claims.UserID, req.Items)
	if err != nil {
		if errors.Is(err, store.ErrEmptyOrder) || errors.Is(err, store.ErrProductUnavailable) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create order")
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// UpdateStatus is ADMIN-only and accepts any of the known statuses; the
// admin may move an order anywhere in the workflow.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	if claims.Role != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "insufficient role")
		return
	}

	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validStatuses[req.Status] {
		respondError(w, http.StatusBadRequest, "invalid status")
		return
	}

	order, err := h.Store.UpdateOrderStatus(id, req.Status)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update order")
		return
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// Cancel authorizes differently from UpdateStatus: a USER may cancel their
// own order while it is still PENDING; an ADMIN may cancel anything.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.Store.GetOrder(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}

	if claims.Role != models.RoleAdmin {
		if order.UserID != claims.UserID {
			respondError(w, http.StatusForbidden, "not your order")
			return
		}
		if order.Status != models.StatusPending {
			respondError(w, http.StatusForbidden, "only pending orders can be cancelled")
			return
		}
	}

	updated, err := h.Store.UpdateOrderStatus(id, models.StatusCancelled)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to cancel order")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
