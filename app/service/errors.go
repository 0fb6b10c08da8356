package service

import (
	"errors"

	"github.com/vibast-solutions/ms-go-atobarai/app/postal"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrProviderUnsupported = errors.New("provider is not supported")

	ErrMissingAddress     = provider.ErrMissingAddress
	ErrGatewayUnreachable = provider.ErrGatewayUnreachable
	ErrNotVoidable        = provider.ErrNotVoidable
	ErrUnknownPostalCode  = postal.ErrPostalCodeNotFound
)
