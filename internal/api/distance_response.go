package api

// swagger:model api.DistanceResponse
type DistanceResponse struct {
	Distance string `json:"distance" example:"343.56 km"`
}
