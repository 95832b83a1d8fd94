package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
	"github.com/dungvu242k3/XoXo-sub001/internal/store"
	"github.com/dungvu242k3/XoXo-sub001/pkg/response"
)

// ListOrders returns the in-memory order collection, newest first.
// @Summary List orders
// @Tags orders
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	response.Success(c, h.store.Orders())
}

// CreateOrder applies the order optimistically and confirms it remotely.
// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param request body model.Order true "order"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var o model.Order
	if err := c.ShouldBindJSON(&o); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	created, err := h.store.CreateOrder(c.Request.Context(), o)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, created)
}

// UpdateOrder replaces an order.
// @Summary Update order
// @Tags orders
// @Router /api/v1/orders/{id} [put]
func (h *Handler) UpdateOrder(c *gin.Context) {
	var o model.Order
	if err := c.ShouldBindJSON(&o); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	o.ID = c.Param("id")
	if err := h.store.UpdateOrder(c.Request.Context(), o); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteOrder removes an order and the items it owns.
// @Summary Delete order
// @Tags orders
// @Router /api/v1/orders/{id} [delete]
func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.store.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

type setStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// SetOrderStatus is the direct-action status path (Confirmed, Delivered,
// Cancelled).
// @Summary Set order status
// @Tags orders
// @Router /api/v1/orders/{id}/status [post]
func (h *Handler) SetOrderStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.store.SetOrderStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

type advanceRequest struct {
	Stage       string `json:"stage" binding:"required"`
	PerformedBy string `json:"performed_by" binding:"required"`
	Note        string `json:"note"`
}

// AdvanceItem moves a line item to a new workflow stage.
// @Summary Advance order item
// @Tags orders
// @Accept json
// @Produce json
// @Param request body advanceRequest true "transition"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/orders/{id}/items/{itemID}/advance [post]
func (h *Handler) AdvanceItem(c *gin.Context) {
	var req advanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.store.AdvanceItem(c.Request.Context(), c.Param("id"), c.Param("itemID"),
		req.Stage, req.PerformedBy, req.Note)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// Reload forces an authoritative refresh of one collection.
// @Summary Reload entity collection
// @Tags sync
// @Router /api/v1/reload/{entity} [post]
func (h *Handler) Reload(c *gin.Context) {
	if err := h.store.Reload(c.Request.Context(), c.Param("entity")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
