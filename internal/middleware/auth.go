package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/bistro-api/internal/models"
	"github.com/harentsoaR/bistro-api/internal/utils"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// ClaimsKey is where VerifyToken leaves the decoded token in the gin
// context.
const ClaimsKey = "decoded"

var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden access")
)

// UserFinder is the single lookup the admin check needs.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticate turns an Authorization header into verified claims. Any
// failure is ErrUnauthorized.
func Authenticate(tokens *utils.TokenManager, header string) (*utils.Claims, error) {
	if header == "" {
		return nil, ErrUnauthorized
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, ErrUnauthorized
	}

	claims, err := tokens.ValidateJWT(strings.TrimSpace(token))
	if err != nil {
		return nil, errors.Wrap(ErrUnauthorized, err.Error())
	}
	return claims, nil
}

// Authorize resolves the user behind claims and requires the admin role.
// Missing claims are ErrUnauthorized; a missing user or any other role is
// ErrForbidden. Other errors come from the store.
func Authorize(ctx context.Context, users UserFinder, claims *utils.Claims) (*models.User, error) {
	if claims == nil || claims.Email == "" {
		return nil, ErrUnauthorized
	}
	user, err := users.FindUserByEmail(ctx, claims.Email)
	if err != nil {
		return nil, errors.Wrap(err, "looking up token owner")
	}
	if !user.IsAdmin() {
		return nil, ErrForbidden
	}
	return user, nil
}

// VerifyToken rejects requests without a valid bearer token with 401.
func VerifyToken(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := Authenticate(tokens, c.GetHeader("Authorization"))
		if err != nil {
			grip.Debug(message.WrapError(err, message.Fields{
				"message": "rejected token",
				"path":    c.FullPath(),
			}))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": ErrUnauthorized.Error()})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// VerifyAdmin must run after VerifyToken. It costs one user lookup per
// request.
func VerifyAdmin(users UserFinder, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		_, err := Authorize(ctx, users, claims)
		switch errors.Cause(err) {
		case nil:
			c.Next()
		case ErrUnauthorized:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": ErrUnauthorized.Error()})
		case ErrForbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": ErrForbidden.Error()})
		default:
			grip.Error(message.WrapError(err, message.Fields{
				"message": "admin check failed",
				"path":    c.FullPath(),
			}))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		}
	}
}

// ClaimsFrom returns the claims VerifyToken stored on c.
func ClaimsFrom(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}
