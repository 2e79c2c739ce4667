package api

// UserSummary 週別清單中的使用者摘要
// swagger:model api.UserSummary
type UserSummary struct {
	Name  string `json:"name" example:"Alice"`
	Email string `json:"email" example:"alice@example.com"`
}
