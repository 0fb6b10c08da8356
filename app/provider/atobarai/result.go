package atobarai

import (
	"encoding/json"

	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
)

// authorizationResult is the provider's verdict on a registration. A pending
// verdict never leaves this package: it is voided and reported as failed.
type authorizationResult int

const (
	authorizationFailed authorizationResult = iota
	authorizationSuccess
	authorizationPending
)

func parseAuthorizationResult(raw string) authorizationResult {
	switch raw {
	case "SUCCESS", "00":
		return authorizationSuccess
	case "PENDING", "10":
		return authorizationPending
	default:
		return authorizationFailed
	}
}

type registrationResponse struct {
	Results     *[]registrationResult `json:"results"`
	AuthoriHold []string              `json:"authori_hold"`
	Errors      *[]responseError      `json:"errors"`
}

type registrationResult struct {
	AuthoriResult   string `json:"authori_result"`
	NPTransactionID string `json:"np_transaction_id"`
}

type responseError struct {
	Codes []string `json:"codes"`
}

type registrationOutcome struct {
	result *provider.PaymentResult
	// pending is set when the authorization was held and must be voided.
	pending              bool
	pendingTransactionID string
}

func interpretRegistration(body []byte) registrationOutcome {
	var resp registrationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return registrationOutcome{result: unknownFailure()}
	}

	if resp.Results != nil {
		if len(*resp.Results) == 0 {
			return registrationOutcome{result: unknownFailure()}
		}
		first := (*resp.Results)[0]

		switch parseAuthorizationResult(first.AuthoriResult) {
		case authorizationSuccess:
			return registrationOutcome{result: &provider.PaymentResult{
				Status:       provider.StatusSuccess,
				PSPReference: first.NPTransactionID,
				Errors:       []string{},
			}}
		case authorizationPending:
			return registrationOutcome{
				result: &provider.PaymentResult{
					Status:       provider.StatusFailed,
					PSPReference: first.NPTransactionID,
					Errors:       HoldReasons.Messages(resp.AuthoriHold),
				},
				pending:              true,
				pendingTransactionID: first.NPTransactionID,
			}
		default:
			return registrationOutcome{result: &provider.PaymentResult{
				Status:       provider.StatusFailed,
				PSPReference: first.NPTransactionID,
				Errors:       []string{},
			}}
		}
	}

	if resp.Errors != nil && len(*resp.Errors) > 0 {
		messages := RegistrationErrors.Messages((*resp.Errors)[0].Codes)
		if len(messages) == 0 {
			messages = []string{UnknownError}
		}
		return registrationOutcome{result: &provider.PaymentResult{
			Status: provider.StatusFailed,
			Errors: messages,
		}}
	}

	return registrationOutcome{result: unknownFailure()}
}

// cancellationCodes extracts the error codes of a cancellation response. An
// absent or empty errors list means the cancellation went through.
func cancellationCodes(body []byte) []string {
	var resp struct {
		Errors []responseError `json:"errors"`
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return []string{unparseableResponseCode}
	}
	if len(resp.Errors) == 0 {
		return nil
	}
	codes := normalizeCodes(resp.Errors[0].Codes)
	if len(codes) == 0 {
		return []string{unparseableResponseCode}
	}
	return codes
}

const unparseableResponseCode = "UNPARSEABLE_RESPONSE"

func unknownFailure() *provider.PaymentResult {
	return &provider.PaymentResult{
		Status: provider.StatusFailed,
		Errors: []string{UnknownError},
	}
}
