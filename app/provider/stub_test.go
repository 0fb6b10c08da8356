package provider

import "context"

type stubProvider struct {
	code string
}

func (p *stubProvider) Code() string { return p.code }

func (p *stubProvider) RegisterTransaction(context.Context, *PaymentData) (*Registration, error) {
	return &Registration{Result: &PaymentResult{Status: StatusSuccess}}, nil
}

func (p *stubProvider) CancelTransaction(context.Context, *PaymentData) (*PaymentResult, error) {
	return &PaymentResult{Status: StatusSuccess}, nil
}

func (p *stubProvider) HealthCheck(context.Context) bool { return true }
