package types

import "github.com/shopspring/decimal"

type Address struct {
	FirstName      string `json:"first_name" validate:"max=255"`
	LastName       string `json:"last_name" validate:"max=255"`
	CompanyName    string `json:"company_name" validate:"max=255"`
	PostalCode     string `json:"postal_code" validate:"required,max=16"`
	CountryArea    string `json:"country_area" validate:"required,max=64"`
	StreetAddress1 string `json:"street_address_1" validate:"max=255"`
	StreetAddress2 string `json:"street_address_2" validate:"max=255"`
	Phone          string `json:"phone" validate:"max=32"`
}

type LineItem struct {
	Quantity    int             `json:"quantity" validate:"gte=1"`
	Description string          `json:"description" validate:"required,max=255"`
	Gross       decimal.Decimal `json:"gross"`
}

type RegisterTransactionRequest struct {
	RequestId     string          `json:"request_id" validate:"required,max=191"`
	PaymentId     string          `json:"payment_id" validate:"required,max=191"`
	Provider      string          `json:"provider" validate:"max=64"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency" validate:"required,len=3,alpha"`
	CustomerEmail string          `json:"customer_email" validate:"omitempty,email"`
	Billing       *Address        `json:"billing"`
	Shipping      *Address        `json:"shipping"`
	Lines         []LineItem      `json:"lines" validate:"dive"`
}

func (r *RegisterTransactionRequest) GetRequestId() string {
	if r == nil {
		return ""
	}
	return r.RequestId
}

func (r *RegisterTransactionRequest) GetPaymentId() string {
	if r == nil {
		return ""
	}
	return r.PaymentId
}

func (r *RegisterTransactionRequest) GetProvider() string {
	if r == nil {
		return ""
	}
	return r.Provider
}

func (r *RegisterTransactionRequest) GetAmount() decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	return r.Amount
}

func (r *RegisterTransactionRequest) GetCurrency() string {
	if r == nil {
		return ""
	}
	return r.Currency
}

func (r *RegisterTransactionRequest) GetCustomerEmail() string {
	if r == nil {
		return ""
	}
	return r.CustomerEmail
}

func (r *RegisterTransactionRequest) GetBilling() *Address {
	if r == nil {
		return nil
	}
	return r.Billing
}

func (r *RegisterTransactionRequest) GetShipping() *Address {
	if r == nil {
		return nil
	}
	return r.Shipping
}

func (r *RegisterTransactionRequest) GetLines() []LineItem {
	if r == nil {
		return nil
	}
	return r.Lines
}

type GetTransactionRequest struct {
	PaymentId string `json:"payment_id" validate:"required,max=191"`
}

func (r *GetTransactionRequest) GetPaymentId() string {
	if r == nil {
		return ""
	}
	return r.PaymentId
}

type CancelTransactionRequest struct {
	RequestId string `json:"request_id" validate:"required,max=191"`
	PaymentId string `json:"payment_id" validate:"required,max=191"`
	Provider  string `json:"provider" validate:"max=64"`
}

func (r *CancelTransactionRequest) GetRequestId() string {
	if r == nil {
		return ""
	}
	return r.RequestId
}

func (r *CancelTransactionRequest) GetPaymentId() string {
	if r == nil {
		return ""
	}
	return r.PaymentId
}

func (r *CancelTransactionRequest) GetProvider() string {
	if r == nil {
		return ""
	}
	return r.Provider
}

type ProviderHealthRequest struct {
	Provider string `json:"provider" validate:"max=64"`
}

func (r *ProviderHealthRequest) GetProvider() string {
	if r == nil {
		return ""
	}
	return r.Provider
}

type PaymentResult struct {
	Status       string   `json:"status"`
	PspReference string   `json:"psp_reference,omitempty"`
	Errors       []string `json:"errors"`
}

type Transaction struct {
	Id             uint64   `json:"id"`
	PaymentId      string   `json:"payment_id"`
	RequestId      string   `json:"request_id"`
	Provider       string   `json:"provider"`
	Amount         string   `json:"amount"`
	AmountMinor    int64    `json:"amount_minor"`
	Currency       string   `json:"currency"`
	Status         string   `json:"status"`
	PspReference   string   `json:"psp_reference,omitempty"`
	Errors         []string `json:"errors"`
	CancelRequired bool     `json:"cancel_required"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

type TransactionEnvelopeResponse struct {
	Transaction *Transaction   `json:"transaction"`
	Result      *PaymentResult `json:"result,omitempty"`
}

type ProviderHealthResponse struct {
	Provider string `json:"provider"`
	Healthy  bool   `json:"healthy"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
