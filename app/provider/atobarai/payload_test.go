package atobarai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
)

func TestBuildTransactionRequest(t *testing.T) {
	orderedAt := time.Date(2024, 3, 31, 16, 30, 0, 0, time.UTC)

	req, err := BuildTransactionRequest(context.Background(), sampleLookup(), samplePayment(), orderedAt)
	require.NoError(t, err)
	require.Len(t, req.Transactions, 1)

	tx := req.Transactions[0]
	require.Equal(t, "pay-1", tx.ShopTransactionID)
	require.Equal(t, "2024-04-01", tx.ShopOrderDate)
	require.Equal(t, "02", tx.SettlementType)
	require.Equal(t, int64(3300), tx.BilledAmount)

	require.Equal(t, Customer{
		CustomerName: "太郎 山田",
		CompanyName:  "株式会社サンプル",
		ZipCode:      "102-0083",
		Address:      "東京都千代田区麹町住友不動産麹町ファーストビル５階４－２－６",
		Tel:          "0312345678",
		Email:        "taro@example.com",
	}, tx.Customer)
	require.Equal(t, DestCustomer{
		CustomerName: "太郎 山田",
		CompanyName:  "株式会社サンプル",
		ZipCode:      "102-0083",
		Address:      "東京都千代田区麹町住友不動産麹町ファーストビル５階４－２－６",
		Tel:          "0312345678",
	}, tx.DestCustomer)

	require.Equal(t, []Goods{
		{Quantity: 1, GoodsName: "Tea set", GoodsPrice: 3000},
		{Quantity: 2, GoodsName: "Shipping", GoodsPrice: 300},
	}, tx.Goods)
}

func TestBuildTransactionRequestMinorUnits(t *testing.T) {
	payment := samplePayment()
	payment.Currency = "USD"
	payment.Amount = decimal.RequireFromString("12.34")
	payment.Lines = []provider.LineItem{{Quantity: 1, Description: "Item", Gross: decimal.RequireFromString("12.34")}}

	req, err := BuildTransactionRequest(context.Background(), sampleLookup(), payment, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1234), req.Transactions[0].BilledAmount)
	require.Equal(t, int64(1234), req.Transactions[0].Goods[0].GoodsPrice)
}

func TestBuildTransactionRequestMissingAddress(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*provider.PaymentData)
	}{
		{name: "billing", mutate: func(p *provider.PaymentData) { p.Billing = nil }},
		{name: "shipping", mutate: func(p *provider.PaymentData) { p.Shipping = nil }},
		{name: "both", mutate: func(p *provider.PaymentData) { p.Billing, p.Shipping = nil, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := samplePayment()
			tt.mutate(payment)
			lookup := &countingLookup{next: sampleLookup()}

			_, err := BuildTransactionRequest(context.Background(), lookup, payment, time.Now())
			require.True(t, errors.Is(err, provider.ErrMissingAddress))
			require.Zero(t, lookup.calls)
		})
	}
}

func TestBuildTransactionRequestEmptyLines(t *testing.T) {
	payment := samplePayment()
	payment.Lines = nil

	req, err := BuildTransactionRequest(context.Background(), sampleLookup(), payment, time.Now())
	require.NoError(t, err)
	require.NotNil(t, req.Transactions[0].Goods)
	require.Empty(t, req.Transactions[0].Goods)
}
