package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/bistro-api/internal/middleware"
	"github.com/harentsoaR/bistro-api/internal/models"
	"github.com/harentsoaR/bistro-api/internal/utils"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

const userExistsMessage = "user already exists"

type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	PhotoURL string `json:"photoURL"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) GetUsers(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	users, err := h.Store.ListUsers(ctx)
	if err != nil {
		internalError(c, err, "listing users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// CheckAdmin tells the caller whether they hold the admin role. Asking
// about anybody else is forbidden.
func (h *Handler) CheckAdmin(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	email := c.Param("email")
	if email != claims.Email {
		forbidden(c)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	user, err := h.Store.FindUserByEmail(ctx, email)
	if err != nil {
		internalError(c, err, "checking admin role")
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": user.IsAdmin()})
}

// RegisterUser stores a new user unless the email is already taken, in
// which case it answers 200 with a sentinel body and inserts nothing.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(req.Password) > utils.MaxPasswordBytes {
		badRequest(c, fmt.Sprintf("password must be at most %d bytes", utils.MaxPasswordBytes))
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		internalError(c, err, "hashing password")
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    strings.TrimSpace(req.Email),
		PhotoURL: req.PhotoURL,
		Password: hashedPassword,
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	id, created, err := h.Store.InsertUserIfAbsent(ctx, &user)
	if err != nil {
		internalError(c, err, "registering user")
		return
	}
	if !created {
		c.JSON(http.StatusOK, models.UserExistsResult{Message: userExistsMessage})
		return
	}

	grip.Info(message.Fields{
		"message": "registered user",
		"user_id": id.Hex(),
	})
	c.JSON(http.StatusOK, models.Inserted(id))
}

// MakeAdmin grants the admin role. There is no way back through the API.
func (h *Handler) MakeAdmin(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	id := middleware.ObjectID(c)
	res, err := h.Store.PromoteUser(ctx, id)
	if err != nil {
		internalError(c, err, "promoting user")
		return
	}
	if res.ModifiedCount > 0 {
		grip.Info(message.Fields{
			"message": "promoted user to admin",
			"user_id": id.Hex(),
		})
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	n, err := h.Store.DeleteUser(ctx, middleware.ObjectID(c))
	if err != nil {
		internalError(c, err, "deleting user")
		return
	}
	c.JSON(http.StatusOK, models.Deleted(n))
}
