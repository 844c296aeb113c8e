package dto

// StartSessionRequest represents the API request for starting a session
type StartSessionRequest struct {
	ReaderID    string `json:"readerId" binding:"required"`
	SessionType string `json:"sessionType" binding:"required,oneof=CHAT PHONE VIDEO"`
}

// SessionResponse represents a reading session in API responses
type SessionResponse struct {
	ID            uint64 `json:"id"`
	ClientID      string `json:"clientId"`
	ReaderID      string `json:"readerId"`
	SessionType   string `json:"sessionType"`
	Status        string `json:"status"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime,omitempty"`
	RatePerMinute string `json:"ratePerMinute"`
	TotalMinutes  int    `json:"totalMinutes"`
	TotalAmount   string `json:"totalAmount"`
}

// ReaderStatusRequest represents the API request for toggling reader
// presence. A null isAvailable leaves the availability flag unchanged.
type ReaderStatusRequest struct {
	IsOnline    bool  `json:"isOnline"`
	IsAvailable *bool `json:"isAvailable"`
}

// ReaderResponse represents a reader profile in API responses
type ReaderResponse struct {
	UserID          string  `json:"userId"`
	DisplayName     string  `json:"displayName"`
	ChatRatePerMin  string  `json:"chatRatePerMin"`
	PhoneRatePerMin string  `json:"phoneRatePerMin"`
	VideoRatePerMin string  `json:"videoRatePerMin"`
	IsOnline        bool    `json:"isOnline"`
	IsAvailable     bool    `json:"isAvailable"`
	Rating          float64 `json:"rating"`
	TotalReviews    int     `json:"totalReviews"`
	TotalSessions   int     `json:"totalSessions"`
}
