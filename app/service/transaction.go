package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vibast-solutions/ms-go-atobarai/app/entity"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
	"github.com/vibast-solutions/ms-go-atobarai/app/repository"
	"github.com/vibast-solutions/ms-go-atobarai/app/types"
	"github.com/vibast-solutions/ms-go-atobarai/config"
)

const defaultBatchSize = int32(100)

type registerTransactionRequest interface {
	GetRequestId() string
	GetPaymentId() string
	GetProvider() string
	GetAmount() decimal.Decimal
	GetCurrency() string
	GetCustomerEmail() string
	GetBilling() *types.Address
	GetShipping() *types.Address
	GetLines() []types.LineItem
}

type cancelTransactionRequest interface {
	GetRequestId() string
	GetPaymentId() string
}

type transactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	Update(ctx context.Context, tx *entity.Transaction) error
	FindByPaymentID(ctx context.Context, paymentID string) (*entity.Transaction, error)
	ListCancelRequired(ctx context.Context, limit int32) ([]*entity.Transaction, error)
}

type transactionEventRepository interface {
	Create(ctx context.Context, event *entity.TransactionEvent) error
}

type TransactionService struct {
	transactionRepo transactionRepository
	eventRepo       transactionEventRepository
	providerReg     *provider.Registry
	jobsCfg         config.JobsConfig
	now             func() time.Time
}

func NewTransactionService(
	transactionRepo transactionRepository,
	eventRepo transactionEventRepository,
	providerReg *provider.Registry,
	jobsCfg config.JobsConfig,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		eventRepo:       eventRepo,
		providerReg:     providerReg,
		jobsCfg:         jobsCfg,
		now:             time.Now,
	}
}

// RegisterTransaction authorizes a payment with its provider and records the
// outcome. A payment that is already authorized is returned as is.
func (s *TransactionService) RegisterTransaction(ctx context.Context, req registerTransactionRequest) (*entity.Transaction, *provider.PaymentResult, error) {
	requestID := strings.TrimSpace(req.GetRequestId())
	paymentID := strings.TrimSpace(req.GetPaymentId())
	if requestID == "" || paymentID == "" {
		return nil, nil, ErrInvalidRequest
	}

	providerClient, err := s.getProvider(req.GetProvider())
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.transactionRepo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		switch existing.Status {
		case entity.TransactionStatusAuthorized:
			return existing, resultFromTransaction(existing), nil
		case entity.TransactionStatusCanceled:
			return nil, nil, fmt.Errorf("%w: canceled transactions cannot be registered again", ErrInvalidStatus)
		}
		if existing.CancelRequired {
			return nil, nil, fmt.Errorf("%w: held authorization is still awaiting its void", ErrInvalidStatus)
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(req.GetCurrency()))
	amountMinor, err := provider.ToMinorUnit(req.GetAmount(), currency)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	registration, err := providerClient.RegisterTransaction(ctx, &provider.PaymentData{
		PaymentID:     paymentID,
		Amount:        req.GetAmount(),
		Currency:      currency,
		Billing:       toAddressData(req.GetBilling()),
		Shipping:      toAddressData(req.GetShipping()),
		CustomerEmail: strings.TrimSpace(req.GetCustomerEmail()),
		Lines:         toLineItems(req.GetLines()),
	})
	if err != nil {
		return nil, nil, err
	}

	now := s.now().UTC()
	tx := existing
	var oldStatus *int32
	if tx == nil {
		tx = &entity.Transaction{PaymentID: paymentID, CreatedAt: now}
	} else {
		previous := tx.Status
		oldStatus = &previous
	}

	result := registration.Result
	tx.RequestID = requestID
	tx.Provider = providerClient.Code()
	tx.AmountMinor = amountMinor
	tx.Currency = currency
	tx.Status = statusFromResult(result)
	tx.PSPReference = optionalString(result.PSPReference)
	tx.Errors = result.Errors
	tx.CancelRequired = registration.AutoCancel.Failed()
	tx.CancelAttempts = 0
	tx.LastCancelError = nil
	if tx.CancelRequired {
		tx.LastCancelError = optionalString(describeAutoCancel(registration.AutoCancel))
	}
	tx.UpdatedAt = now

	if existing == nil {
		err = s.transactionRepo.Create(ctx, tx)
	} else {
		err = s.transactionRepo.Update(ctx, tx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrTransactionAlreadyExists) {
			return nil, nil, fmt.Errorf("%w: payment was registered concurrently", ErrInvalidStatus)
		}
		return nil, nil, err
	}

	eventType := entity.TransactionEventRegistered
	if result.Status != provider.StatusSuccess {
		eventType = entity.TransactionEventRejected
	}
	s.recordEvent(ctx, tx, eventType, oldStatus, map[string]interface{}{"result": result})

	if report := registration.AutoCancel; report != nil {
		eventType = entity.TransactionEventAutoCancelled
		if report.Failed() {
			eventType = entity.TransactionEventAutoCancelFailed
		}
		s.recordEvent(ctx, tx, eventType, nil, autoCancelPayload(report))
	}

	return tx, result, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, paymentID string) (*entity.Transaction, error) {
	tx, err := s.transactionRepo.FindByPaymentID(ctx, strings.TrimSpace(paymentID))
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

// CancelTransaction voids a registered payment with the provider that
// registered it. Cancelling twice returns the recorded cancellation.
func (s *TransactionService) CancelTransaction(ctx context.Context, req cancelTransactionRequest) (*entity.Transaction, *provider.PaymentResult, error) {
	tx, err := s.GetTransaction(ctx, req.GetPaymentId())
	if err != nil {
		return nil, nil, err
	}
	if tx.Status == entity.TransactionStatusCanceled {
		return tx, resultFromTransaction(tx), nil
	}

	result, err := s.cancelWithProvider(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	if requestID := strings.TrimSpace(req.GetRequestId()); requestID != "" {
		tx.RequestID = requestID
	}

	if err := s.applyCancellation(ctx, tx, result); err != nil {
		return nil, nil, err
	}

	return tx, result, nil
}

func (s *TransactionService) ProviderHealth(ctx context.Context, code string) (string, bool, error) {
	providerClient, err := s.getProvider(code)
	if err != nil {
		return "", false, err
	}
	return providerClient.Code(), providerClient.HealthCheck(ctx), nil
}

func (s *TransactionService) cancelWithProvider(ctx context.Context, tx *entity.Transaction) (*provider.PaymentResult, error) {
	providerClient, err := s.getProvider(tx.Provider)
	if err != nil {
		return nil, err
	}
	return providerClient.CancelTransaction(ctx, &provider.PaymentData{
		PaymentID: tx.PaymentID,
		Amount:    provider.FromMinorUnit(tx.AmountMinor, tx.Currency),
		Currency:  tx.Currency,
	})
}

func (s *TransactionService) applyCancellation(ctx context.Context, tx *entity.Transaction, result *provider.PaymentResult) error {
	now := s.now().UTC()
	oldStatus := tx.Status

	eventType := entity.TransactionEventCancelRejected
	if result.Status == provider.StatusSuccess {
		eventType = entity.TransactionEventCancelled
		tx.Status = entity.TransactionStatusCanceled
		tx.CancelRequired = false
		tx.LastCancelError = nil
	} else {
		tx.LastCancelError = optionalString(strings.Join(result.Errors, "; "))
	}
	tx.UpdatedAt = now

	if err := s.transactionRepo.Update(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	s.recordEvent(ctx, tx, eventType, &oldStatus, map[string]interface{}{"result": result})
	return nil
}

func (s *TransactionService) getProvider(code string) (provider.Provider, error) {
	providerClient, err := s.providerReg.Get(code)
	if err != nil {
		if errors.Is(err, provider.ErrProviderNotSupported) {
			return nil, ErrProviderUnsupported
		}
		return nil, err
	}
	return providerClient, nil
}

func (s *TransactionService) recordEvent(ctx context.Context, tx *entity.Transaction, eventType string, oldStatus *int32, payload map[string]interface{}) {
	var payloadJSON *string
	if raw, err := json.Marshal(payload); err == nil {
		encoded := string(raw)
		payloadJSON = &encoded
	}

	_ = s.eventRepo.Create(ctx, &entity.TransactionEvent{
		TransactionID: tx.ID,
		EventType:     eventType,
		OldStatus:     oldStatus,
		NewStatus:     tx.Status,
		PayloadJSON:   payloadJSON,
		CreatedAt:     tx.UpdatedAt,
	})
}

func (s *TransactionService) batchSize() int32 {
	if s.jobsCfg.BatchSize > 0 {
		return s.jobsCfg.BatchSize
	}
	return defaultBatchSize
}

func statusFromResult(result *provider.PaymentResult) int32 {
	if result != nil && result.Status == provider.StatusSuccess {
		return entity.TransactionStatusAuthorized
	}
	return entity.TransactionStatusFailed
}

func resultFromTransaction(tx *entity.Transaction) *provider.PaymentResult {
	return &provider.PaymentResult{
		Status:       provider.StatusSuccess,
		PSPReference: tx.PSPReferenceValue(),
		Errors:       []string{},
	}
}

func autoCancelPayload(report *provider.AutoCancelReport) map[string]interface{} {
	payload := map[string]interface{}{
		"np_transaction_id": report.TransactionID,
		"error_codes":       report.ErrorCodes,
	}
	if report.Err != nil {
		payload["error"] = report.Err.Error()
	}
	return payload
}

func describeAutoCancel(report *provider.AutoCancelReport) string {
	if report.Err != nil {
		return report.Err.Error()
	}
	return strings.Join(report.ErrorCodes, ", ")
}

func toAddressData(a *types.Address) *provider.AddressData {
	if a == nil {
		return nil
	}
	return &provider.AddressData{
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		CompanyName:    a.CompanyName,
		PostalCode:     a.PostalCode,
		CountryArea:    a.CountryArea,
		StreetAddress1: a.StreetAddress1,
		StreetAddress2: a.StreetAddress2,
		Phone:          a.Phone,
	}
}

func toLineItems(lines []types.LineItem) []provider.LineItem {
	items := make([]provider.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, provider.LineItem{
			Quantity:    line.Quantity,
			Description: line.Description,
			Gross:       line.Gross,
		})
	}
	return items
}

func optionalString(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
