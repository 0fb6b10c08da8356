package mapper

import (
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-atobarai/app/entity"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
)

func TestTransactionToView(t *testing.T) {
	ref := "T1"
	created := time.Date(2024, 4, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*3600))
	view := TransactionToView(&entity.Transaction{
		ID:           7,
		PaymentID:    "pay-1",
		Provider:     "np-atobarai",
		AmountMinor:  1234,
		Currency:     "USD",
		Status:       entity.TransactionStatusAuthorized,
		PSPReference: &ref,
		CreatedAt:    created,
		UpdatedAt:    created,
	})

	if view.Amount != "12.34" {
		t.Fatalf("unexpected amount: %s", view.Amount)
	}
	if view.Status != "authorized" || view.PspReference != "T1" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Errors == nil {
		t.Fatal("expected empty errors slice, got nil")
	}
	if view.CreatedAt != "2024-04-01T00:00:00Z" {
		t.Fatalf("unexpected created at: %s", view.CreatedAt)
	}
}

func TestTransactionToViewNil(t *testing.T) {
	if TransactionToView(nil) != nil {
		t.Fatal("expected nil view")
	}
	if PaymentResultToView(nil) != nil {
		t.Fatal("expected nil result view")
	}
}

func TestPaymentResultToView(t *testing.T) {
	view := PaymentResultToView(&provider.PaymentResult{Status: provider.StatusFailed, PSPReference: "T2", Errors: []string{"held"}})
	if view.Status != "FAILED" || view.PspReference != "T2" || len(view.Errors) != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
}
