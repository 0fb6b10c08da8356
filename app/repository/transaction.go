package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-atobarai/app/entity"
)

var (
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrTransactionAlreadyExists = errors.New("transaction already exists")
)

const transactionColumns = `
	id, payment_id, request_id, provider, amount_minor, currency,
	status, psp_reference, errors_json,
	cancel_required, cancel_attempts, last_cancel_error,
	created_at, updated_at
`

type TransactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	errorsJSON, err := serializeStrings(tx.Errors)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (
			payment_id, request_id, provider, amount_minor, currency,
			status, psp_reference, errors_json,
			cancel_required, cancel_attempts, last_cancel_error,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		tx.PaymentID,
		tx.RequestID,
		tx.Provider,
		tx.AmountMinor,
		tx.Currency,
		tx.Status,
		nullableStringValue(tx.PSPReference),
		errorsJSON,
		tx.CancelRequired,
		tx.CancelAttempts,
		nullableStringValue(tx.LastCancelError),
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrTransactionAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	tx.ID = uint64(id)
	return nil
}

// Update rewrites the mutable part of a row. Registering a payment again after
// a failure reuses its row, so amount and request id are mutable too.
func (r *TransactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	errorsJSON, err := serializeStrings(tx.Errors)
	if err != nil {
		return err
	}

	query := `
		UPDATE transactions SET
			request_id = ?,
			provider = ?,
			amount_minor = ?,
			currency = ?,
			status = ?,
			psp_reference = ?,
			errors_json = ?,
			cancel_required = ?,
			cancel_attempts = ?,
			last_cancel_error = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		tx.RequestID,
		tx.Provider,
		tx.AmountMinor,
		tx.Currency,
		tx.Status,
		nullableStringValue(tx.PSPReference),
		errorsJSON,
		tx.CancelRequired,
		tx.CancelAttempts,
		nullableStringValue(tx.LastCancelError),
		tx.UpdatedAt,
		tx.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

func (r *TransactionRepository) FindByPaymentID(ctx context.Context, paymentID string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE payment_id = ? LIMIT 1`

	tx := &entity.Transaction{}
	if err := scanTransaction(r.db.QueryRowContext(ctx, query, paymentID), tx); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return tx, nil
}

// PSPReference returns the NP transaction id recorded for paymentID, or an
// empty string when the payment is unknown or was never assigned one.
func (r *TransactionRepository) PSPReference(ctx context.Context, paymentID string) (string, error) {
	query := `SELECT psp_reference FROM transactions WHERE payment_id = ? LIMIT 1`

	var reference sql.NullString
	if err := r.db.QueryRowContext(ctx, query, paymentID).Scan(&reference); err == sql.ErrNoRows {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return reference.String, nil
}

func (r *TransactionRepository) ListCancelRequired(ctx context.Context, limit int32) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE cancel_required = 1
		  AND psp_reference IS NOT NULL
		ORDER BY updated_at ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*entity.Transaction, 0)
	for rows.Next() {
		item := &entity.Transaction{}
		if err := scanTransaction(rows, item); err != nil {
			return nil, err
		}
		transactions = append(transactions, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(scan rowScanner, tx *entity.Transaction) error {
	var pspReference sql.NullString
	var errorsJSON string
	var lastCancelError sql.NullString

	err := scan.Scan(
		&tx.ID,
		&tx.PaymentID,
		&tx.RequestID,
		&tx.Provider,
		&tx.AmountMinor,
		&tx.Currency,
		&tx.Status,
		&pspReference,
		&errorsJSON,
		&tx.CancelRequired,
		&tx.CancelAttempts,
		&lastCancelError,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return err
	}

	tx.PSPReference = stringPtrFromNull(pspReference)
	tx.LastCancelError = stringPtrFromNull(lastCancelError)

	messages, err := parseStrings(errorsJSON)
	if err != nil {
		return err
	}
	tx.Errors = messages

	return nil
}
