package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetReviews(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	reviews, err := h.Store.ListReviews(ctx)
	if err != nil {
		internalError(c, err, "listing reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}
