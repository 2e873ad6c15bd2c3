package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/bistro-api/internal/utils"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IssueToken signs an access token for a registered user after checking
// their password.
func (h *Handler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	ctx, cancel := h.storeContext(c)
	defer cancel()

	user, err := h.Store.FindUserByEmail(ctx, req.Email)
	if err != nil {
		internalError(c, err, "finding user for token")
		return
	}
	// unknown emails still pay for a bcrypt comparison
	var hash string
	if user != nil {
		hash = user.Password
	}
	if !utils.CheckPasswordHash(req.Password, hash) || user == nil {
		grip.Info(message.Fields{
			"message": "token refused",
			"email":   req.Email,
		})
		unauthorized(c)
		return
	}

	token, err := h.Tokens.GenerateJWT(user.Email, user.Name)
	if err != nil {
		internalError(c, err, "generating token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
