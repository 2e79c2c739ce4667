package router

import (
	"testing"
	"time"

	"user-hub/internal/cache"
	"user-hub/internal/database"
	"user-hub/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, service.NewAuth("testsecret", time.Minute))

	got := map[string]bool{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}

	expected := []string{
		"GET /api/ping",
		"POST /api/users/register",
		"PUT /api/users/change-status",
		"GET /api/users/get-distance",
		"POST /api/users/get-user-listing",
	}
	for _, route := range expected {
		require.True(t, got[route], route)
	}
}
