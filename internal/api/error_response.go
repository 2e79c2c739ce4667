package api

// ErrorResponse 全域錯誤回應封套
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	StatusCode int    `json:"status_code" example:"400"`
	Message    string `json:"message" example:"All inputs are required"`
	Error      string `json:"error,omitempty"`
}
