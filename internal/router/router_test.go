package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"tripplanner/internal/auth"
	"tripplanner/internal/config"
	"tripplanner/internal/handler"
	"tripplanner/internal/router"
	"tripplanner/internal/service"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	jwtService := auth.NewJWTService("test-secret", "HS256", time.Hour, time.Hour)
	tokenStore := auth.NewTokenStore(nil)
	authService := service.NewAuthService(nil, jwtService, tokenStore)

	router.Register(
		e,
		config.Load(),
		jwtService,
		tokenStore,
		handler.NewAuthHandler(authService),
		handler.NewTripHandler(),
		handler.NewActivityHandler(),
	)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	e := newTestEcho()

	rec := get(e, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Travel Planner API")
	assert.Contains(t, rec.Body.String(), `"status":"running"`)

	rec = get(e, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestPlaceholderRoutes(t *testing.T) {
	e := newTestEcho()

	tests := []struct {
		path    string
		wantMsg string
	}{
		{"/trips", "Get all trips endpoint - TODO: Implement"},
		{"/trips/7", "Get trip 7 endpoint - TODO: Implement"},
		{"/activities/trip/7", "Get activities for trip 7 - TODO: Implement"},
		{"/activities/3", "Get activity 3 endpoint - TODO: Implement"},
	}

	for _, tt := range tests {
		rec := get(e, tt.path)
		assert.Equal(t, http.StatusOK, rec.Code, tt.path)
		assert.Contains(t, rec.Body.String(), tt.wantMsg)
	}
}

func TestProtectedRouteRejectsBadTokens(t *testing.T) {
	e := newTestEcho()

	for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	}
}
