package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	IsVerified   bool      `json:"is_verified"`
	KYCComplete  bool      `json:"kyc_complete"`
	CreatedAt    time.Time `json:"created_at"`
}

type BankAccount struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"`
	IFSCCode      string    `json:"ifsc_code"`
	AccountType   string    `json:"account_type"`
	UPIID         string    `json:"upi_id,omitempty"`
	Balance       int64     `json:"balance"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
}

type Transaction struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Amount          int64     `json:"amount"`
	Type            string    `json:"type"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Recipient       string    `json:"recipient,omitempty"`
	Sender          string    `json:"sender,omitempty"`
	AccountID       *int64    `json:"account_id,omitempty"`
	Date            time.Time `json:"date"`
	Status          string    `json:"status"`
	PaymentMethod   string    `json:"payment_method"`
	ClientRequestID *string   `json:"client_request_id,omitempty"`
}

type Investment struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Type           string    `json:"type"`
	Name           string    `json:"name"`
	InvestedAmount int64     `json:"invested_amount"`
	CurrentValue   int64     `json:"current_value"`
	Returns        int64     `json:"returns"`
	Units          string    `json:"units,omitempty"`
	AveragePrice   string    `json:"average_price,omitempty"`
	IsSIP          bool      `json:"is_sip"`
	SIPAmount      int64     `json:"sip_amount,omitempty"`
	LastUpdated    time.Time `json:"last_updated"`
	CreatedAt      time.Time `json:"created_at"`
}

type Insurance struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Type         string    `json:"type"`
	Provider     string    `json:"provider"`
	PolicyNumber string    `json:"policy_number"`
	CoverAmount  int64     `json:"cover_amount"`
	Premium      int64     `json:"premium"`
	Frequency    string    `json:"frequency"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status"`
	Details      string    `json:"details,omitempty"`
}

type Insight struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Date        time.Time `json:"date"`
	IsRead      bool      `json:"is_read"`
}

type AuditEntry struct {
	ID         int64     `json:"id"`
	ActorID    int64     `json:"actor_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Data       string    `json:"data"`
	CreatedAt  time.Time `json:"created_at"`
}
