package atobarai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
)

const (
	pathAuthorizationsFind = "/authorizations/find"
	pathTransactions       = "/transactions"
	pathTransactionsCancel = "/transactions/cancel"
)

type Response struct {
	StatusCode int
	Body       []byte
}

// Client sends single, unretried requests to the NP Atobarai API.
type Client struct {
	http *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{http: httpClient}
}

func (c *Client) Post(ctx context.Context, cfg ApiConfig, path string, payload interface{}) (*Response, error) {
	if payload == nil {
		payload = struct{}{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL(path), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(cfg.MerchantCode, cfg.SPCode)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(terminalIDHeader, cfg.TerminalID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrGatewayUnreachable, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// HealthCheck validates credentials and connectivity. Only an authentication
// rejection or a transport failure counts as unhealthy.
func (c *Client) HealthCheck(ctx context.Context, cfg ApiConfig) bool {
	resp, err := c.Post(ctx, cfg, pathAuthorizationsFind, nil)
	if err != nil {
		return false
	}
	return resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden
}
