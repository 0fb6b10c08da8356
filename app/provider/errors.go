package provider

import "errors"

var (
	ErrMissingAddress     = errors.New("address is required for transaction")
	ErrGatewayUnreachable = errors.New("cannot connect to payment gateway")
	ErrNotVoidable        = errors.New("payment cannot be voided")
	ErrAmountOutOfRange   = errors.New("amount cannot be expressed in minor units")
)
