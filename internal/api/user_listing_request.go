package api

import "encoding/json"

// UserListingRequest 的 week_number 可為單一整數或整數陣列 (0=Sunday … 6=Saturday)
// swagger:model api.UserListingRequest
type UserListingRequest struct {
	WeekNumber json.RawMessage `json:"week_number" swaggertype:"array,integer" example:"0,3"`
}
