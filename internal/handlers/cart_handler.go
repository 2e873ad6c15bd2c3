package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/bistro-api/internal/middleware"
	"github.com/harentsoaR/bistro-api/internal/models"
)

// GetCarts lists the cart of the email in the query string, which must be
// the caller's own. Without the parameter the caller's cart is listed.
func (h *Handler) GetCarts(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	email := c.DefaultQuery("email", claims.Email)
	if email != claims.Email {
		forbidden(c)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	carts, err := h.Store.ListCarts(ctx, email)
	if err != nil {
		internalError(c, err, "listing carts")
		return
	}
	c.JSON(http.StatusOK, carts)
}

func (h *Handler) CreateCart(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if item.Email == "" {
		item.Email = claims.Email
	}
	if item.Email != claims.Email {
		forbidden(c)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	id, err := h.Store.InsertCart(ctx, &item)
	if err != nil {
		internalError(c, err, "adding cart item")
		return
	}
	c.JSON(http.StatusOK, models.Inserted(id))
}

// DeleteCart removes one of the caller's cart items. Unknown ids, and
// items of other users, report a deletedCount of 0.
func (h *Handler) DeleteCart(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	n, err := h.Store.DeleteCart(ctx, middleware.ObjectID(c), claims.Email)
	if err != nil {
		internalError(c, err, "deleting cart item")
		return
	}
	c.JSON(http.StatusOK, models.Deleted(n))
}
