package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type cartRemoveRequest struct {
	ProductID string `json:"product_id"`
}

// getCart returns the caller's cart, or an empty representation
func (h *Handler) getCart(c *gin.Context) {
	cart, err := h.carts.GetCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Cart retrieved successfully"
	if len(cart.Items) == 0 {
		message = "Cart is empty"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "cart": cart})
}

// addToCart adds a product line to the caller's cart
func (h *Handler) addToCart(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	cart, err := h.carts.AddItem(c.Request.Context(), currentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added to cart successfully",
		"cart":    cart,
	})
}

// updateCartItem replaces a line's quantity
func (h *Handler) updateCartItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	cart, err := h.carts.UpdateItem(c.Request.Context(), currentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"cart":    cart,
	})
}

// removeFromCart drops a line from the caller's cart
func (h *Handler) removeFromCart(c *gin.Context) {
	var req cartRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), currentUserID(c), req.ProductID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Item removed from cart successfully"
	if len(cart.Items) == 0 {
		message = "Item removed from cart successfully. Cart is now empty"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "cart": cart})
}

// clearCart deletes the caller's cart
func (h *Handler) clearCart(c *gin.Context) {
	cart, err := h.carts.Clear(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"cart":    cart,
	})
}
