package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/bistro-api/internal/models"
	"github.com/harentsoaR/bistro-api/internal/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userTable struct {
	users map[string]*models.User
	err   error
	calls int
}

func (u *userTable) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	u.calls++
	if u.err != nil {
		return nil, u.err
	}
	return u.users[email], nil
}

func newTokens(t *testing.T) *utils.TokenManager {
	tokens, err := utils.NewTokenManager("gate-secret", time.Hour)
	require.NoError(t, err)
	return tokens
}

func TestAuthenticate(t *testing.T) {
	tokens := newTokens(t)
	token, err := tokens.GenerateJWT("guest@bistro.test", "")
	require.NoError(t, err)

	claims, err := Authenticate(tokens, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "guest@bistro.test", claims.Email)

	claims, err = Authenticate(tokens, "bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "guest@bistro.test", claims.Email)

	for name, header := range map[string]string{
		"Missing":     "",
		"NoScheme":    token,
		"OtherScheme": "Basic " + token,
		"EmptyToken":  "Bearer ",
		"Garbage":     "Bearer abc.def.ghi",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Authenticate(tokens, header)
			assert.Equal(t, ErrUnauthorized, errors.Cause(err))
		})
	}
}

func TestAuthorize(t *testing.T) {
	users := &userTable{users: map[string]*models.User{
		"chef@bistro.test":  {Email: "chef@bistro.test", Role: models.RoleAdmin},
		"guest@bistro.test": {Email: "guest@bistro.test"},
		"cook@bistro.test":  {Email: "cook@bistro.test", Role: "cook"},
	}}
	ctx := context.Background()

	user, err := Authorize(ctx, users, &utils.Claims{Email: "chef@bistro.test"})
	require.NoError(t, err)
	assert.Equal(t, "chef@bistro.test", user.Email)

	for _, email := range []string{"guest@bistro.test", "cook@bistro.test", "nobody@bistro.test"} {
		_, err := Authorize(ctx, users, &utils.Claims{Email: email})
		assert.Equal(t, ErrForbidden, err, email)
	}

	_, err = Authorize(ctx, users, nil)
	assert.Equal(t, ErrUnauthorized, err)

	users.err = errors.New("no reachable servers")
	_, err = Authorize(ctx, users, &utils.Claims{Email: "chef@bistro.test"})
	require.Error(t, err)
	assert.NotEqual(t, ErrForbidden, errors.Cause(err))
	assert.NotEqual(t, ErrUnauthorized, errors.Cause(err))
}

func TestGateChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := newTokens(t)
	users := &userTable{users: map[string]*models.User{
		"chef@bistro.test":  {Email: "chef@bistro.test", Role: models.RoleAdmin},
		"guest@bistro.test": {Email: "guest@bistro.test"},
	}}

	r := gin.New()
	r.GET("/admin", VerifyToken(tokens), VerifyAdmin(users, time.Second), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		c.String(http.StatusOK, claims.Email)
	})
	r.GET("/unguarded-admin", VerifyAdmin(users, time.Second), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	request := func(path, email string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if email != "" {
			token, err := tokens.GenerateJWT(email, "")
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := request("/admin", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"unauthorized access"}`, rec.Body.String())
	assert.Zero(t, users.calls, "no lookup without a token")

	rec = request("/admin", "guest@bistro.test")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"forbidden access"}`, rec.Body.String())

	rec = request("/admin", "chef@bistro.test")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chef@bistro.test", rec.Body.String())

	rec = request("/unguarded-admin", "chef@bistro.test")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	users.err = errors.New("server selection timeout")
	rec = request("/admin", "chef@bistro.test")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "server selection")
}

func TestObjectIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/things/:id", ObjectIDParam(), func(c *gin.Context) {
		c.String(http.StatusOK, ObjectID(c).Hex())
	})
	r.GET("/plain", func(c *gin.Context) {
		assert.True(t, ObjectID(c).IsZero())
		c.Status(http.StatusOK)
	})

	id := primitive.NewObjectID()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/"+id.Hex(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id.Hex(), rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/menu-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
