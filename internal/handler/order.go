package handler

import (
	"log/slog"
	"net/http"

	"github.com/jonyprachine123/test-2/internal/model"
	"github.com/jonyprachine123/test-2/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderHandler serves checkout and order administration
type OrderHandler struct {
	orderService service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, log: log}
}

// GetOrders lists every order, newest first
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order by its ORD identifier
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder places an order; the total is computed here, never taken from the client
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// UpdateOrder treats a body holding only status as a status change and
// anything else as a general update
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		order *model.Order
		err   error
	)
	if req.StatusOnly() {
		order, err = h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), *req.Status)
	} else {
		order, err = h.orderService.UpdateOrder(c.Request.Context(), c.Param("id"), &req)
	}
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus changes only the status of an order
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
