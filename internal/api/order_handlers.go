package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tharunikaraja/ecommerce-backend/internal/service"
)

// listOrders returns the caller's orders, newest first
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"count":   len(orders),
		"orders":  orders,
	})
}

// getOrder returns one of the caller's orders by ID
func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"order":   order,
	})
}

// createOrder places an order from the caller's cart
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

type updateOrderStatusRequest struct {
	OrderStatus    string `json:"order_status"`
	TrackingNumber string `json:"tracking_number"`
}

// updateOrderStatus moves an order to a new status
func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), currentUserID(c), c.Param("id"), req.OrderStatus, req.TrackingNumber)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

// cancelOrder cancels an order unless it is in a terminal state
func (h *Handler) cancelOrder(c *gin.Context) {
	order, err := h.orders.Cancel(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}
