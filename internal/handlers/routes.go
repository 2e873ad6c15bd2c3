package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/bistro-api/internal/middleware"
)

const livenessMessage = "Bistro Boss Restaurant is running"

// RegisterRoutes wires every route with its guards. Token routes run
// VerifyToken; admin routes run VerifyToken then VerifyAdmin. Path ids are
// parsed after the guards so unauthenticated callers always see 401.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	token := middleware.VerifyToken(h.Tokens)
	admin := middleware.VerifyAdmin(h.Store, h.Timeout)
	id := middleware.ObjectIDParam()

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, livenessMessage)
	})

	r.POST("/jwt", h.IssueToken)

	menus := r.Group("/menus")
	{
		menus.GET("", h.GetMenus)
		menus.GET("/:id", id, h.GetMenu)
		menus.POST("", token, admin, h.CreateMenu)
		menus.PATCH("/:id", token, admin, id, h.UpdateMenu)
		menus.DELETE("/:id", token, admin, id, h.DeleteMenu)
	}

	r.GET("/reviews", h.GetReviews)

	carts := r.Group("/carts", token)
	{
		carts.GET("", h.GetCarts)
		carts.POST("", h.CreateCart)
		carts.DELETE("/:id", id, h.DeleteCart)
	}

	users := r.Group("/users")
	{
		users.GET("", token, admin, h.GetUsers)
		users.POST("", h.RegisterUser)
		users.GET("/admin/:email", token, h.CheckAdmin)
		users.PATCH("/admin/:id", token, admin, id, h.MakeAdmin)
		users.DELETE("/:id", token, admin, id, h.DeleteUser)
	}
}
