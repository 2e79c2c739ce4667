package middleware

import (
	"errors"
	"net/http"
	"strings"

	"user-hub/internal/api"
	"user-hub/internal/database"
	"user-hub/internal/service"
	"user-hub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

var getUserByID = store.GetUserByID

func extractToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireAuth 驗證 Bearer token，並將對應使用者完整載入 context
func RequireAuth(db database.DB, auth *service.Auth) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := extractToken(c)
			if !ok {
				return c.JSON(http.StatusForbidden, api.ErrorResponse{
					StatusCode: http.StatusForbidden,
					Message:    "No token provided",
				})
			}

			claims, err := auth.VerifyAccessToken(tokenString)
			if err != nil {
				return c.JSON(http.StatusForbidden, api.ErrorResponse{
					StatusCode: http.StatusForbidden,
					Message:    "Invalid token",
				})
			}

			user, err := getUserByID(c.Request().Context(), db, claims.UserID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return c.JSON(http.StatusNotFound, api.ErrorResponse{
						StatusCode: http.StatusNotFound,
						Message:    "User not found",
					})
				}
				c.Logger().Error(err)
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
					StatusCode: http.StatusInternalServerError,
					Message:    "Internal Server Error",
				})
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}
