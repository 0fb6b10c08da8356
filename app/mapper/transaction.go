package mapper

import (
	"time"

	"github.com/vibast-solutions/ms-go-atobarai/app/entity"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
	"github.com/vibast-solutions/ms-go-atobarai/app/types"
)

func TransactionToView(item *entity.Transaction) *types.Transaction {
	if item == nil {
		return nil
	}

	return &types.Transaction{
		Id:             item.ID,
		PaymentId:      item.PaymentID,
		RequestId:      item.RequestID,
		Provider:       item.Provider,
		Amount:         provider.FromMinorUnit(item.AmountMinor, item.Currency).String(),
		AmountMinor:    item.AmountMinor,
		Currency:       item.Currency,
		Status:         TransactionStatusName(item.Status),
		PspReference:   item.PSPReferenceValue(),
		Errors:         cloneStrings(item.Errors),
		CancelRequired: item.CancelRequired,
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func PaymentResultToView(result *provider.PaymentResult) *types.PaymentResult {
	if result == nil {
		return nil
	}
	return &types.PaymentResult{
		Status:       string(result.Status),
		PspReference: result.PSPReference,
		Errors:       cloneStrings(result.Errors),
	}
}

func TransactionStatusName(status int32) string {
	switch status {
	case entity.TransactionStatusAuthorized:
		return "authorized"
	case entity.TransactionStatusFailed:
		return "failed"
	case entity.TransactionStatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

func cloneStrings(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
