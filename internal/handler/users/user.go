package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"user-hub/internal/api"
	"user-hub/internal/database"
	"user-hub/internal/middleware"
	"user-hub/internal/model"
	"user-hub/internal/service"
	"user-hub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var (
	hashPassword        = service.HashPassword
	createUser          = store.CreateUser
	getUserByEmail      = store.GetUserByEmail
	countUsers          = store.CountUsers
	toggleAllUserStatus = store.ToggleAllUserStatus
	listUsersByWeekday  = store.ListUsersByWeekday
	issueAccessToken    = func(auth *service.Auth, userID int) (string, error) {
		return auth.IssueAccessToken(userID)
	}
)

var weekdayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// @Summary     Register a new user
// @Description 註冊新使用者並回傳存取令牌（效期 1 小時）
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.RegisterUserRequest true "使用者註冊資料"
// @Success     201 {object} api.Response{data=api.RegisterUserResponse}
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/register [post]
func RegisterHandler(db database.DB, auth *service.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    "All inputs are required",
			})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    "All inputs are required",
			})
		}

		if req.Status != "" && req.Status != model.StatusActive && req.Status != model.StatusInactive {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    "Status must be active or inactive",
			})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    "invalid email format",
			})
		}

		if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    "invalid coordinates",
			})
		}

		ctx := c.Request().Context()
		if _, err := getUserByEmail(ctx, db, req.Email); err == nil {
			return c.JSON(http.StatusConflict, api.ErrorResponse{
				StatusCode: http.StatusConflict,
				Message:    "This user already exists",
			})
		} else if !errors.Is(err, pgx.ErrNoRows) {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				StatusCode: http.StatusInternalServerError,
				Message:    "Internal Server Error",
				Error:      err.Error(),
			})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				StatusCode: http.StatusInternalServerError,
				Message:    "failed to hash password",
			})
		}

		status := req.Status
		if status == "" {
			status = model.StatusActive
		}

		user, err := createUser(ctx, db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Address:      req.Address,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			Status:       status,
		})
		if err != nil {
			// 唯一鍵競態下的重複註冊仍回 409
			if errors.Is(err, store.ErrEmailTaken) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{
					StatusCode: http.StatusConflict,
					Message:    "This user already exists",
				})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				StatusCode: http.StatusInternalServerError,
				Message:    "Internal Server Error",
				Error:      err.Error(),
			})
		}

		token, err := issueAccessToken(auth, user.ID)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				StatusCode: http.StatusInternalServerError,
				Message:    "failed to issue token",
			})
		}

		return c.JSON(http.StatusCreated, api.Response{
			StatusCode: http.StatusCreated,
			Message:    "User created successfully",
			Data: api.RegisterUserResponse{
				ID:           user.ID,
				Name:         user.Name,
				Email:        user.Email,
				Address:      user.Address,
				Latitude:     user.Latitude,
				Longitude:    user.Longitude,
				Status:       user.Status,
				RegisteredAt: user.RegisteredAt,
				Token:        token,
			},
		})
	}
}

// @Summary     Toggle every user's status
// @Description 將所有使用者狀態翻轉 (active↔inactive)，單一批次更新
// @Tags        users
// @Produce     json
// @Success     200 {object} api.Response
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/change-status [put]
func ChangeStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		count, err := countUsers(ctx, db)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				StatusCode: http.StatusInternalServerError,
				Message:    "Internal Server Error",
				Error:      err.Error(),
			})
		}
		if count == 0 {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{
				StatusCode: http.StatusNotFound,
				Message:    "No users found in the database.",
			})
		}

		if err := toggleAllUserStatus(ctx, db); err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				StatusCode: http.StatusInternalServerError,
				Message:    "Internal Server Error",
				Error:      err.Error(),
			})
		}

		return c.JSON(http.StatusOK, api.Response{
			StatusCode: http.StatusOK,
			Message:    "All users' status has been changed successfully.",
		})
	}
}

// @Summary     Distance from the caller to a destination
// @Description 計算目前使用者座標與目的座標間的大圓距離
// @Tags        users
// @Produce     json
// @Param       latitude2  query number true "目的地緯度"
// @Param       longitude2 query number true "目的地經度"
// @Success     200 {object} api.Response{data=api.DistanceResponse}
// @Failure     400 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/get-distance [get]
func GetDistanceHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		latStr := c.QueryParam("latitude2")
		lonStr := c.QueryParam("longitude2")
		if latStr == "" || lonStr == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    "Destination coordinates required.",
			})
		}

		user, ok := c.Get(middleware.ContextUserKey).(*model.User)
		if !ok || user == nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    "User coordinates not found.",
			})
		}

		destLat, latErr := strconv.ParseFloat(latStr, 64)
		destLon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    "Invalid destination coordinates provided",
			})
		}

		km := service.DistanceKm(user.Latitude, user.Longitude, destLat, destLon)

		return c.JSON(http.StatusOK, api.Response{
			StatusCode: http.StatusOK,
			Message:    "Distance calculated successfully",
			Data:       api.DistanceResponse{Distance: service.FormatDistanceKm(km)},
		})
	}
}

// @Summary     List users grouped by registration weekday
// @Description 依註冊日星期分組回傳使用者清單，week_number 為 0–6 或其陣列 (0=Sunday)
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.UserListingRequest true "星期編號"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/get-user-listing [post]
func UserListingHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UserListingRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    "invalid request payload",
			})
		}

		days, errMsg := parseWeekNumbers(req.WeekNumber)
		if errMsg != "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    errMsg,
			})
		}

		rows, err := listUsersByWeekday(c.Request().Context(), db, days)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				StatusCode: http.StatusInternalServerError,
				Message:    "Internal Server Error",
				Error:      err.Error(),
			})
		}
		if len(rows) == 0 {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{
				StatusCode: http.StatusNotFound,
				Message:    "No data found for the specified week number.",
			})
		}

		grouped := map[string][]api.UserSummary{}
		for _, r := range rows {
			name := weekdayNames[r.Weekday]
			grouped[name] = append(grouped[name], api.UserSummary{Name: r.Name, Email: r.Email})
		}

		return c.JSON(http.StatusOK, api.Response{
			StatusCode: http.StatusOK,
			Message:    "Weekly data retrieved",
			Data:       grouped,
		})
	}
}

// parseWeekNumbers 解析 week_number（單一整數或整數陣列），回傳星期編號或錯誤訊息
func parseWeekNumbers(raw json.RawMessage) ([]int, string) {
	const requiredMsg = "Week number is required and cannot be empty"

	trimmed := strings.TrimSpace(string(raw))
	if len(raw) == 0 || trimmed == "null" {
		return nil, requiredMsg
	}

	if strings.HasPrefix(trimmed, "[") {
		const arrayMsg = "Week number array must contain integers from 0 to 6"
		var days []json.Number
		if err := json.Unmarshal(raw, &days); err != nil {
			return nil, arrayMsg
		}
		if len(days) == 0 {
			return nil, requiredMsg
		}
		out := make([]int, 0, len(days))
		for _, d := range days {
			n, err := d.Int64()
			if err != nil || n < 0 || n > 6 {
				return nil, arrayMsg
			}
			out = append(out, int(n))
		}
		return out, ""
	}

	const scalarMsg = "Week number must be an integer between 0 and 6 or an array of such integers"
	var day json.Number
	if err := json.Unmarshal(raw, &day); err != nil {
		return nil, scalarMsg
	}
	n, err := day.Int64()
	if err != nil || n < 0 || n > 6 {
		return nil, scalarMsg
	}
	return []int{int(n)}, ""
}
