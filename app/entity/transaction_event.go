package entity

import "time"

const (
	TransactionEventRegistered       = "registered"
	TransactionEventRejected         = "rejected"
	TransactionEventAutoCancelled    = "auto_cancelled"
	TransactionEventAutoCancelFailed = "auto_cancel_failed"
	TransactionEventCancelled        = "cancelled"
	TransactionEventCancelRejected   = "cancel_rejected"
)

type TransactionEvent struct {
	ID uint64

	TransactionID uint64

	EventType string

	OldStatus *int32
	NewStatus int32

	PayloadJSON *string

	CreatedAt time.Time
}
