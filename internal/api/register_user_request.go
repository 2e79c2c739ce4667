package api

// swagger:model api.RegisterUserRequest
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required" example:"Alice"`
	Email    string `json:"email" validate:"required" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
	Address  string `json:"address" validate:"required" example:"221B Baker Street, London"`

	// 零值座標視同未提供
	Latitude  float64 `json:"latitude" validate:"required" example:"51.5237"`
	Longitude float64 `json:"longitude" validate:"required" example:"-0.1586"`

	// 省略時預設為 active
	Status string `json:"status" example:"active"`
}
