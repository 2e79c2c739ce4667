package api

import "time"

// swagger:model api.RegisterUserResponse
type RegisterUserResponse struct {
	ID           int       `json:"id" example:"1"`
	Name         string    `json:"name" example:"Alice"`
	Email        string    `json:"email" example:"alice@example.com"`
	Address      string    `json:"address" example:"221B Baker Street, London"`
	Latitude     float64   `json:"latitude" example:"51.5237"`
	Longitude    float64   `json:"longitude" example:"-0.1586"`
	Status       string    `json:"status" example:"active"`
	RegisteredAt time.Time `json:"registered_at" example:"2025-05-01T15:04:05Z"`
	Token        string    `json:"token" example:"eyJhbGciOi..."`
}
