package dto

// PayoutRequest represents the API request for a reader withdrawal.
// An empty method defaults to STRIPE.
type PayoutRequest struct {
	Amount string `json:"amount" binding:"required"`
	Method string `json:"method" binding:"omitempty,oneof=STRIPE PAYPAL BANK_TRANSFER"`
}
