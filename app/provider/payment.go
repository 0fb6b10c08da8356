package provider

import "github.com/shopspring/decimal"

type PaymentStatus string

const (
	StatusSuccess PaymentStatus = "SUCCESS"
	StatusFailed  PaymentStatus = "FAILED"
)

type AddressData struct {
	FirstName      string
	LastName       string
	CompanyName    string
	PostalCode     string
	CountryArea    string
	StreetAddress1 string
	StreetAddress2 string
	Phone          string
}

type LineItem struct {
	Quantity    int
	Description string
	Gross       decimal.Decimal
}

type PaymentData struct {
	PaymentID     string
	Amount        decimal.Decimal
	Currency      string
	Billing       *AddressData
	Shipping      *AddressData
	CustomerEmail string
	Lines         []LineItem
}

type PaymentResult struct {
	Status       PaymentStatus `json:"status"`
	PSPReference string        `json:"psp_reference,omitempty"`
	Errors       []string      `json:"errors"`
}
