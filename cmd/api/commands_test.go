package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harentsoaR/bistro-api/internal/config"
	"github.com/harentsoaR/bistro-api/internal/handlers"
	"github.com/harentsoaR/bistro-api/internal/store"
	"github.com/harentsoaR/bistro-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAppCommands(t *testing.T) {
	app := buildApp()

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"serve", "indexes", "promote"}, names)
}

func TestPromoteRequiresEmail(t *testing.T) {
	err := buildApp().Run([]string{"bistro-api", "promote"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--email")
}

func TestCORSConfig(t *testing.T) {
	open := corsConfig(nil)
	assert.True(t, open.AllowAllOrigins)
	assert.False(t, open.AllowCredentials)
	assert.NoError(t, open.Validate())

	restricted := corsConfig([]string{"https://bistro.example.com"})
	assert.False(t, restricted.AllowAllOrigins)
	assert.True(t, restricted.AllowCredentials)
	assert.Equal(t, []string{"https://bistro.example.com"}, restricted.AllowOrigins)
	assert.NoError(t, restricted.Validate())
}

func TestRouterServesWithCORS(t *testing.T) {
	tokens, err := utils.NewTokenManager("router-secret", time.Hour)
	require.NoError(t, err)

	conf := &config.Config{Server: config.ServerConfig{
		GinMode:     "test",
		CORSOrigins: []string{"https://bistro.example.com"},
	}}
	r := newRouter(conf, handlers.NewHandler(&store.MockConnector{}, tokens, time.Second))

	req := httptest.NewRequest(http.MethodGet, "/menus", nil)
	req.Header.Set("Origin", "https://bistro.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://bistro.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, "[]", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/menus", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
