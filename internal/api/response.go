package api

// Response 全域成功回應封套，status_code 與 HTTP 狀態碼一致
// swagger:model api.Response
type Response struct {
	StatusCode int    `json:"status_code" example:"200"`
	Message    string `json:"message" example:"ok"`
	Data       any    `json:"data,omitempty"`
}
