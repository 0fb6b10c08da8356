package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/vibast-solutions/ms-go-atobarai/app/entity"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
)

// RunVoidHeldBatch retries the void of held authorizations whose automatic
// cancellation failed during registration.
func (s *TransactionService) RunVoidHeldBatch(ctx context.Context) error {
	items, err := s.transactionRepo.ListCancelRequired(ctx, s.batchSize())
	if err != nil {
		return err
	}

	var firstErr error
	for _, tx := range items {
		if tx == nil || !tx.CancelRequired || strings.TrimSpace(tx.PSPReferenceValue()) == "" {
			continue
		}

		result, err := s.cancelWithProvider(ctx, tx)
		if err != nil {
			if recordErr := s.recordVoidFailure(ctx, tx, err.Error()); recordErr != nil {
				firstErr = keepFirstErr(firstErr, recordErr)
			}
			firstErr = keepFirstErr(firstErr, err)
			continue
		}

		if result.Status != provider.StatusSuccess {
			if err := s.recordVoidFailure(ctx, tx, strings.Join(result.Errors, "; ")); err != nil {
				firstErr = keepFirstErr(firstErr, err)
			}
			continue
		}

		if err := s.applyCancellation(ctx, tx, result); err != nil {
			firstErr = keepFirstErr(firstErr, err)
		}
	}

	return firstErr
}

func (s *TransactionService) recordVoidFailure(ctx context.Context, tx *entity.Transaction, reason string) error {
	tx.CancelAttempts++
	tx.LastCancelError = optionalString(truncate(reason, 1024))
	tx.UpdatedAt = s.now().UTC()

	if err := s.transactionRepo.Update(ctx, tx); err != nil {
		return err
	}

	s.recordEvent(ctx, tx, entity.TransactionEventCancelRejected, nil, map[string]interface{}{
		"attempt": tx.CancelAttempts,
		"error":   reason,
	})
	return nil
}

// truncate keeps at most max bytes of value without splitting a rune.
func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut]
}

func keepFirstErr(current error, candidate error) error {
	if current != nil {
		return current
	}
	return candidate
}
