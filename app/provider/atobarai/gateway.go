package atobarai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-atobarai/app/factory"
	"github.com/vibast-solutions/ms-go-atobarai/app/postal"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
)

// ReferenceLookup resolves the NP transaction id recorded for a local payment.
// An empty id with a nil error means nothing was recorded.
type ReferenceLookup interface {
	PSPReference(ctx context.Context, paymentID string) (string, error)
}

type Option func(*Gateway)

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		g.now = now
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// Gateway holds the collaborators of the transaction lifecycle. It keeps no
// per-transaction state, so one instance serves concurrent calls.
type Gateway struct {
	client     *Client
	postal     postal.Lookup
	references ReferenceLookup
	now        func() time.Time
	logger     logrus.FieldLogger
}

func NewGateway(client *Client, lookup postal.Lookup, references ReferenceLookup, opts ...Option) *Gateway {
	g := &Gateway{
		client:     client,
		postal:     lookup,
		references: references,
		now:        time.Now,
		logger:     factory.NewModuleLogger("np-atobarai"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) RegisterTransaction(ctx context.Context, cfg ApiConfig, payment *provider.PaymentData) (*provider.Registration, error) {
	request, err := BuildTransactionRequest(ctx, g.postal, payment, g.now())
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Post(ctx, cfg, pathTransactions, request)
	if err != nil {
		return nil, err
	}

	outcome := interpretRegistration(resp.Body)
	registration := &provider.Registration{Result: outcome.result}
	if outcome.pending {
		registration.AutoCancel = g.autoCancel(ctx, cfg, outcome.pendingTransactionID)
	}

	return registration, nil
}

// autoCancel voids a held authorization. Its outcome is reported to operators
// only; the caller already sees the registration as failed.
func (g *Gateway) autoCancel(ctx context.Context, cfg ApiConfig, transactionID string) *provider.AutoCancelReport {
	report := &provider.AutoCancelReport{TransactionID: transactionID}
	l := g.logger.WithField("np_transaction_id", transactionID)

	if strings.TrimSpace(transactionID) == "" {
		report.Err = fmt.Errorf("%w: held authorization carries no np_transaction_id", provider.ErrNotVoidable)
		l.WithError(report.Err).Error("Held transaction could not be cancelled")
		return report
	}

	report.ErrorCodes, report.Err = g.cancel(ctx, cfg, transactionID)
	switch {
	case report.Err != nil:
		l.WithError(report.Err).Error("Held transaction could not be cancelled")
	case len(report.ErrorCodes) > 0:
		l.WithField("codes", strings.Join(report.ErrorCodes, ", ")).Error("Held transaction could not be cancelled")
	default:
		l.Info("Held transaction cancelled")
	}

	return report
}

func (g *Gateway) HealthCheck(ctx context.Context, cfg ApiConfig) bool {
	return g.client.HealthCheck(ctx, cfg)
}

// Provider binds a Gateway to one merchant configuration.
type Provider struct {
	gateway *Gateway
	cfg     ApiConfig
}

func NewProvider(gateway *Gateway, cfg ApiConfig) *Provider {
	return &Provider{gateway: gateway, cfg: cfg}
}

func (p *Provider) Code() string {
	return Code
}

func (p *Provider) RegisterTransaction(ctx context.Context, payment *provider.PaymentData) (*provider.Registration, error) {
	return p.gateway.RegisterTransaction(ctx, p.cfg, payment)
}

func (p *Provider) CancelTransaction(ctx context.Context, payment *provider.PaymentData) (*provider.PaymentResult, error) {
	return p.gateway.CancelTransaction(ctx, p.cfg, payment)
}

func (p *Provider) HealthCheck(ctx context.Context) bool {
	return p.gateway.HealthCheck(ctx, p.cfg)
}
