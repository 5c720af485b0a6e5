package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type wishlistRequest struct {
	ProductID string `json:"product_id"`
}

// getWishlist returns the caller's wishlist, or an empty representation
func (h *Handler) getWishlist(c *gin.Context) {
	wishlist, err := h.wishlists.GetWishlist(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Wishlist retrieved successfully"
	if len(wishlist.Products) == 0 {
		message = "Wishlist is empty"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"count":    len(wishlist.Products),
		"wishlist": wishlist,
	})
}

// addToWishlist references a product in the caller's wishlist
func (h *Handler) addToWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	wishlist, err := h.wishlists.Add(c.Request.Context(), currentUserID(c), req.ProductID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Product added to wishlist successfully",
		"wishlist": wishlist,
	})
}

// removeFromWishlist drops a product reference
func (h *Handler) removeFromWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	wishlist, err := h.wishlists.Remove(c.Request.Context(), currentUserID(c), req.ProductID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Product removed from wishlist successfully"
	if len(wishlist.Products) == 0 {
		message = "Product removed from wishlist successfully. Wishlist is now empty"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "wishlist": wishlist})
}

// checkWishlist reports whether a product is in the caller's wishlist
func (h *Handler) checkWishlist(c *gin.Context) {
	inWishlist, err := h.wishlists.Check(c.Request.Context(), currentUserID(c), c.Query("product_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Product not in wishlist"
	if inWishlist {
		message = "Product is in wishlist"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     message,
		"in_wishlist": inWishlist,
	})
}

// clearWishlist deletes the caller's wishlist
func (h *Handler) clearWishlist(c *gin.Context) {
	wishlist, err := h.wishlists.Clear(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Wishlist cleared successfully",
		"wishlist": wishlist,
	})
}
