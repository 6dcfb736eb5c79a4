package events

import "time"

// Event types
const (
	TransactionPosted = "transaction.posted"
	UserRegistered    = "user.registered"
)

// DefaultStream is the stream (redis) or topic (kafka) ledger events go to.
const DefaultStream = "payhub.transactions"

// Event is the envelope every published message uses.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// TransactionPostedEvent is emitted after a transaction has been committed.
type TransactionPostedEvent struct {
	TransactionID int64     `json:"transactionId"`
	AccountID     string    `json:"accountId"`
	Amount        string    `json:"amount"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Category      string    `json:"category"`
	RecipientName *string   `json:"recipientName,omitempty"`
	Balance       string    `json:"balance"`
	Date          time.Time `json:"date"`
}

// UserRegisteredEvent is emitted after a new user and account were created.
type UserRegisteredEvent struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
