package entity

import "time"

const (
	TransactionStatusAuthorized int32 = 10
	TransactionStatusFailed     int32 = 20
	TransactionStatusCanceled   int32 = 30
)

type Transaction struct {
	ID uint64

	PaymentID string
	RequestID string
	Provider  string

	AmountMinor int64
	Currency    string

	Status       int32
	PSPReference *string
	Errors       []string

	// CancelRequired marks a held authorization whose automatic void did not
	// go through; the void-held job retries it.
	CancelRequired  bool
	CancelAttempts  int32
	LastCancelError *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Transaction) PSPReferenceValue() string {
	if t == nil || t.PSPReference == nil {
		return ""
	}
	return *t.PSPReference
}
