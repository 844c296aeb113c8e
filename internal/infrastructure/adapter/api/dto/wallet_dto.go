package dto

// AddBalanceRequest represents the API request for crediting a balance
type AddBalanceRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// BalanceResponse represents the API response for a user's balance
type BalanceResponse struct {
	UserID  string `json:"userId"`
	Balance string `json:"balance"`
}

// ProfileResponse represents the API response for the caller's account
type ProfileResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Balance string `json:"balance"`
}

// TransactionResponse represents one ledger entry in API responses
type TransactionResponse struct {
	ID          uint64 `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// AddBalanceResponse represents the API response after a top-up credit
type AddBalanceResponse struct {
	Balance     string              `json:"balance"`
	Transaction TransactionResponse `json:"transaction"`
}
