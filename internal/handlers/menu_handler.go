package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/bistro-api/internal/middleware"
	"github.com/harentsoaR/bistro-api/internal/models"
)

func (h *Handler) GetMenus(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	menus, err := h.Store.ListMenus(ctx)
	if err != nil {
		internalError(c, err, "listing menus")
		return
	}
	c.JSON(http.StatusOK, menus)
}

// GetMenu answers null rather than 404 when the item does not exist.
func (h *Handler) GetMenu(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	menu, err := h.Store.FindMenu(ctx, middleware.ObjectID(c))
	if err != nil {
		internalError(c, err, "finding menu")
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *Handler) CreateMenu(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	id, err := h.Store.InsertMenu(ctx, &item)
	if err != nil {
		internalError(c, err, "creating menu")
		return
	}
	c.JSON(http.StatusOK, models.Inserted(id))
}

// UpdateMenu rewrites name, category, price, recipe and image. Fields left
// out of the body become null.
func (h *Handler) UpdateMenu(c *gin.Context) {
	var update models.MenuUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	res, err := h.Store.UpdateMenu(ctx, middleware.ObjectID(c), update)
	if err != nil {
		internalError(c, err, "updating menu")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteMenu(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	n, err := h.Store.DeleteMenu(ctx, middleware.ObjectID(c))
	if err != nil {
		internalError(c, err, "deleting menu")
		return
	}
	c.JSON(http.StatusOK, models.Deleted(n))
}
