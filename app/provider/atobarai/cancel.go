package atobarai

import (
	"context"
	"strings"

	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
)

func (g *Gateway) CancelTransaction(ctx context.Context, cfg ApiConfig, payment *provider.PaymentData) (*provider.PaymentResult, error) {
	pspReference, err := g.references.PSPReference(ctx, payment.PaymentID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(pspReference) == "" {
		return nil, provider.ErrNotVoidable
	}

	codes, err := g.cancel(ctx, cfg, pspReference)
	if err != nil {
		return nil, err
	}
	if len(codes) > 0 {
		return &provider.PaymentResult{
			Status:       provider.StatusFailed,
			PSPReference: pspReference,
			Errors:       CancellationErrors.Messages(codes),
		}, nil
	}

	return &provider.PaymentResult{
		Status:       provider.StatusSuccess,
		PSPReference: pspReference,
		Errors:       []string{},
	}, nil
}

func (g *Gateway) cancel(ctx context.Context, cfg ApiConfig, transactionID string) ([]string, error) {
	payload := &cancelRequest{Transactions: []cancelTransaction{{NPTransactionID: transactionID}}}
	resp, err := g.client.Post(ctx, cfg, pathTransactionsCancel, payload)
	if err != nil {
		return nil, err
	}
	return cancellationCodes(resp.Body), nil
}
