package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listProducts returns products, optionally filtered by category
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Products retrieved successfully",
		"count":    len(products),
		"products": products,
	})
}

// getProduct returns a single product by ID
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"product": product,
	})
}
