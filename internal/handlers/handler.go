package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/bistro-api/internal/store"
	"github.com/harentsoaR/bistro-api/internal/utils"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// Handler carries what every route needs: the data store, the token
// manager, and the deadline applied to each store call.
type Handler struct {
	Store   store.Connector
	Tokens  *utils.TokenManager
	Timeout time.Duration
}

func NewHandler(conn store.Connector, tokens *utils.TokenManager, timeout time.Duration) *Handler {
	return &Handler{
		Store:   conn,
		Tokens:  tokens,
		Timeout: timeout,
	}
}

func (h *Handler) storeContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.Timeout)
}

// internalError logs err with the route and answers with a body that
// carries no detail.
func internalError(c *gin.Context, err error, msg string) {
	grip.Error(message.WrapError(err, message.Fields{
		"message": msg,
		"method":  c.Request.Method,
		"route":   c.FullPath(),
	}))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
}
