package router

import (
	"github.com/labstack/echo/v4"

	"user-hub/internal/cache"
	"user-hub/internal/database"
	"user-hub/internal/handler"
	"user-hub/internal/handler/users"
	"user-hub/internal/middleware"
	"user-hub/internal/service"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, auth *service.Auth) {
	api := e.Group("/api")

	requireAuth := middleware.RequireAuth(db, auth)

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rdb), requireAuth)

	apiUsers := api.Group("/users")
	apiUsers.POST("/register", users.RegisterHandler(db, auth))
	apiUsers.PUT("/change-status", users.ChangeStatusHandler(db), requireAuth)
	apiUsers.GET("/get-distance", users.GetDistanceHandler(), requireAuth)
	apiUsers.POST("/get-user-listing", users.UserListingHandler(db), requireAuth)
}
