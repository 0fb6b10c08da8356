// Package atobarai integrates the NP Atobarai deferred-payment service:
// transaction registration, authorization interpretation and voiding.
package atobarai

import (
	"strings"
	"time"
)

const (
	Code = "np-atobarai"

	ProductionURL         = "https://cp.np-payment-gateway.com/v1"
	TestURL               = "https://ctcp.np-payment-gateway.com/v1"
	DefaultRequestTimeout = 15 * time.Second

	settlementTypeAtobarai = "02"
	terminalIDHeader       = "X-NP-Terminal-Id"
)

// ApiConfig is the merchant configuration for a single call. It is never
// mutated by this package.
type ApiConfig struct {
	MerchantCode   string
	SPCode         string
	TerminalID     string
	TestMode       bool
	ProductionURL  string
	TestURL        string
	RequestTimeout time.Duration
}

// URL resolves path against the environment selected by TestMode.
func (c ApiConfig) URL(path string) string {
	base := strings.TrimSpace(c.ProductionURL)
	if base == "" {
		base = ProductionURL
	}
	if c.TestMode {
		base = strings.TrimSpace(c.TestURL)
		if base == "" {
			base = TestURL
		}
	}
	return strings.TrimRight(base, "/") + path
}

func (c ApiConfig) timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return DefaultRequestTimeout
	}
	return c.RequestTimeout
}
