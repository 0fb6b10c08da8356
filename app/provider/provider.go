package provider

import "context"

// Registration is the outcome of a transaction registration. Result is what the
// caller sees; AutoCancel is the operational side channel, set only when the
// provider had to void a held authorization on its own.
type Registration struct {
	Result     *PaymentResult
	AutoCancel *AutoCancelReport
}

type AutoCancelReport struct {
	TransactionID string
	ErrorCodes    []string
	Err           error
}

func (r *AutoCancelReport) Failed() bool {
	if r == nil {
		return false
	}
	return r.Err != nil || len(r.ErrorCodes) > 0
}

type Provider interface {
	Code() string
	RegisterTransaction(ctx context.Context, payment *PaymentData) (*Registration, error)
	CancelTransaction(ctx context.Context, payment *PaymentData) (*PaymentResult, error)
	HealthCheck(ctx context.Context) bool
}
