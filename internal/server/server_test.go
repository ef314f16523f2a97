package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pantryline/backend/config"
	"github.com/pantryline/backend/internal/server"
	"github.com/pantryline/backend/internal/testhelpers"
)

func TestHealthEndpoint(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	cfg := &config.Config{
		ServerHost: "127.0.0.1",
		ServerPort: "0",
		JWTSecret:  "test-secret",
	}

	srv := server.New(cfg, db, nil, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRoutesMounted(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	cfg := &config.Config{
		ServerHost: "127.0.0.1",
		ServerPort: "0",
		JWTSecret:  "test-secret",
	}

	srv := server.New(cfg, db, nil, nil, nil)

	// An unauthenticated request to a mounted route gets 401, not 404.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shopping-list", nil)
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
