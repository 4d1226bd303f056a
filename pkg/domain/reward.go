package domain

// RewardSummary is the server-settled rewards total: items that have already
// expired and been paid out. The client adds live accrual on top of it.
type RewardSummary struct {
	Total float64 `json:"total"`
}
