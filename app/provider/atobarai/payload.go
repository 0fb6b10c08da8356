package atobarai

import (
	"context"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-atobarai/app/postal"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
)

const orderDateLayout = "2006-01-02"

var japanTime = time.FixedZone("JST", 9*60*60)

type TransactionRequest struct {
	Transactions []Transaction `json:"transactions"`
}

type Transaction struct {
	ShopTransactionID string       `json:"shop_transaction_id"`
	ShopOrderDate     string       `json:"shop_order_date"`
	SettlementType    string       `json:"settlement_type"`
	BilledAmount      int64        `json:"billed_amount"`
	Customer          Customer     `json:"customer"`
	DestCustomer      DestCustomer `json:"dest_customer"`
	Goods             []Goods      `json:"goods"`
}

type Customer struct {
	CustomerName string `json:"customer_name"`
	CompanyName  string `json:"company_name"`
	ZipCode      string `json:"zip_code"`
	Address      string `json:"address"`
	Tel          string `json:"tel"`
	Email        string `json:"email"`
}

type DestCustomer struct {
	CustomerName string `json:"customer_name"`
	CompanyName  string `json:"company_name"`
	ZipCode      string `json:"zip_code"`
	Address      string `json:"address"`
	Tel          string `json:"tel"`
}

type Goods struct {
	Quantity   int    `json:"quantity"`
	GoodsName  string `json:"goods_name"`
	GoodsPrice int64  `json:"goods_price"`
}

type cancelRequest struct {
	Transactions []cancelTransaction `json:"transactions"`
}

type cancelTransaction struct {
	NPTransactionID string `json:"np_transaction_id"`
}

// BuildTransactionRequest maps a payment into the registration payload. It
// fails before touching the postal lookup when either party is missing.
func BuildTransactionRequest(ctx context.Context, lookup postal.Lookup, payment *provider.PaymentData, orderedAt time.Time) (*TransactionRequest, error) {
	billing := payment.Billing
	shipping := payment.Shipping
	if billing == nil {
		return nil, fmt.Errorf("%w: billing address is required for transaction in NP Atobarai", provider.ErrMissingAddress)
	}
	if shipping == nil {
		return nil, fmt.Errorf("%w: shipping address is required for transaction in NP Atobarai", provider.ErrMissingAddress)
	}

	billedAmount, err := provider.ToMinorUnit(payment.Amount, payment.Currency)
	if err != nil {
		return nil, err
	}

	billingAddress, err := FormatAddress(ctx, lookup, billing)
	if err != nil {
		return nil, fmt.Errorf("billing address: %w", err)
	}
	shippingAddress, err := FormatAddress(ctx, lookup, shipping)
	if err != nil {
		return nil, fmt.Errorf("shipping address: %w", err)
	}

	goods := make([]Goods, 0, len(payment.Lines))
	for _, line := range payment.Lines {
		price, err := provider.ToMinorUnit(line.Gross, payment.Currency)
		if err != nil {
			return nil, err
		}
		goods = append(goods, Goods{
			Quantity:   line.Quantity,
			GoodsName:  line.Description,
			GoodsPrice: price,
		})
	}

	return &TransactionRequest{
		Transactions: []Transaction{{
			ShopTransactionID: payment.PaymentID,
			ShopOrderDate:     orderedAt.In(japanTime).Format(orderDateLayout),
			SettlementType:    settlementTypeAtobarai,
			BilledAmount:      billedAmount,
			Customer: Customer{
				CustomerName: FormatName(billing),
				CompanyName:  billing.CompanyName,
				ZipCode:      billing.PostalCode,
				Address:      billingAddress,
				Tel:          normalizePhone(billing.Phone),
				Email:        payment.CustomerEmail,
			},
			DestCustomer: DestCustomer{
				CustomerName: FormatName(shipping),
				CompanyName:  shipping.CompanyName,
				ZipCode:      shipping.PostalCode,
				Address:      shippingAddress,
				Tel:          normalizePhone(shipping.Phone),
			},
			Goods: goods,
		}},
	}, nil
}
