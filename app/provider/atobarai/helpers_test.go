package atobarai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/vibast-solutions/ms-go-atobarai/app/postal"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
)

type countingLookup struct {
	next  postal.Lookup
	calls int
}

func (l *countingLookup) Lookup(ctx context.Context, postalCode string) (*postal.Locality, error) {
	l.calls++
	return l.next.Lookup(ctx, postalCode)
}

type fakeReferences struct {
	pspReferenceFn func(ctx context.Context, paymentID string) (string, error)
}

func (f *fakeReferences) PSPReference(ctx context.Context, paymentID string) (string, error) {
	if f.pspReferenceFn != nil {
		return f.pspReferenceFn(ctx, paymentID)
	}
	return "", nil
}

func staticReference(ref string) *fakeReferences {
	return &fakeReferences{pspReferenceFn: func(context.Context, string) (string, error) {
		return ref, nil
	}}
}

type recordedRequest struct {
	Path       string
	User       string
	Password   string
	TerminalID string
	Body       map[string]interface{}
}

// npServer records every request and answers with the body registered for
// the request path.
type npServer struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]string
	statuses  map[string]int
}

func newNPServer(t *testing.T) *npServer {
	t.Helper()
	s := &npServer{
		responses: map[string]string{},
		statuses:  map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]interface{}
		_ = json.Unmarshal(raw, &body)
		user, password, _ := r.BasicAuth()

		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{
			Path:       r.URL.Path,
			User:       user,
			Password:   password,
			TerminalID: r.Header.Get(terminalIDHeader),
			Body:       body,
		})
		response := s.responses[r.URL.Path]
		status, ok := s.statuses[r.URL.Path]
		s.mu.Unlock()

		if !ok {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *npServer) respond(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[path] = status
	s.responses[path] = body
}

func (s *npServer) requestsTo(path string) []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []recordedRequest
	for _, req := range s.requests {
		if req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

func (s *npServer) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *npServer) config() ApiConfig {
	return ApiConfig{
		MerchantCode: "merchant",
		SPCode:       "sp-code",
		TerminalID:   "terminal-1",
		TestMode:     true,
		TestURL:      s.URL,
	}
}

func sampleAddress() *provider.AddressData {
	return &provider.AddressData{
		FirstName:      "太郎",
		LastName:       "山田",
		CompanyName:    "株式会社サンプル",
		PostalCode:     "102-0083",
		CountryArea:    "東京都",
		StreetAddress1: "４－２－６",
		StreetAddress2: "住友不動産麹町ファーストビル５階",
		Phone:          "+81312345678",
	}
}

func samplePayment() *provider.PaymentData {
	return &provider.PaymentData{
		PaymentID:     "pay-1",
		Amount:        decimal.RequireFromString("3300"),
		Currency:      "JPY",
		Billing:       sampleAddress(),
		Shipping:      sampleAddress(),
		CustomerEmail: "taro@example.com",
		Lines: []provider.LineItem{
			{Quantity: 1, Description: "Tea set", Gross: decimal.RequireFromString("3000")},
			{Quantity: 2, Description: "Shipping", Gross: decimal.RequireFromString("300")},
		},
	}
}

func sampleLookup() postal.Lookup {
	return postal.NewDataset(postal.Locality{
		PostalCode:   "102-0083",
		Prefecture:   "東京都",
		City:         "千代田区",
		Neighborhood: "麹町",
	})
}

func newTestGateway(references ReferenceLookup) (*Gateway, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	g := NewGateway(NewClient(nil), sampleLookup(), references, WithLogger(logger))
	return g, hook
}
