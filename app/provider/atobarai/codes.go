package atobarai

import (
	"sort"
	"strings"
)

const UnknownError = "Unknown error while processing the payment."

// CodeTable translates provider codes of one family into messages.
type CodeTable struct {
	name     string
	messages map[string]string
}

func (t CodeTable) Name() string {
	return t.name
}

func (t CodeTable) Message(code string) string {
	if message, ok := t.messages[code]; ok {
		return message
	}
	return "#" + code + ": " + UnknownError
}

// Messages translates codes in a stable order, dropping duplicates.
func (t CodeTable) Messages(codes []string) []string {
	unique := normalizeCodes(codes)
	messages := make([]string, 0, len(unique))
	for _, code := range unique {
		messages = append(messages, t.Message(code))
	}
	return messages
}

func normalizeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	unique := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		unique = append(unique, code)
	}
	sort.Strings(unique)
	return unique
}

var RegistrationErrors = CodeTable{
	name: "registration",
	messages: map[string]string{
		"E0100001": "Authentication failed for the merchant credentials.",
		"E0100002": "Shop transaction ID is missing.",
		"E0100003": "Shop transaction ID is too long.",
		"E0100004": "Shop transaction ID contains invalid characters.",
		"E0100005": "Shop transaction ID has already been registered.",
		"E0100006": "Order date is missing.",
		"E0100007": "Order date is not a valid date.",
		"E0100010": "Settlement type is invalid.",
		"E0100011": "Billed amount is missing.",
		"E0100012": "Billed amount is out of the allowed range.",
		"E0100013": "Billed amount does not match the sum of goods.",
		"E0100020": "Customer name is missing.",
		"E0100021": "Customer name is too long.",
		"E0100022": "Customer postal code is missing or invalid.",
		"E0100023": "Customer address is missing.",
		"E0100024": "Customer address is too long.",
		"E0100025": "Customer phone number is missing or invalid.",
		"E0100026": "Customer email address is invalid.",
		"E0100030": "Delivery recipient name is invalid.",
		"E0100031": "Delivery postal code is missing or invalid.",
		"E0100032": "Delivery address is missing or too long.",
		"E0100033": "Delivery phone number is invalid.",
		"E0100040": "Goods list is missing.",
		"E0100041": "Goods name is missing or too long.",
		"E0100042": "Goods price is invalid.",
		"E0100043": "Goods quantity is invalid.",
		"E0100090": "The request could not be processed at this time.",
	},
}

var CancellationErrors = CodeTable{
	name: "cancellation",
	messages: map[string]string{
		"E0100001": "Authentication failed for the merchant credentials.",
		"E0100110": "NP transaction ID is missing.",
		"E0100111": "NP transaction ID is invalid.",
		"E0100112": "The transaction does not exist.",
		"E0100113": "The transaction has already been cancelled.",
		"E0100114": "The transaction cannot be cancelled after billing has been issued.",
		"E0100115": "The transaction cannot be cancelled after shipment was reported.",
		"E0100116": "The transaction is being processed and cannot be cancelled yet.",
		"E0100190": "The cancellation could not be processed at this time.",
	},
}

var HoldReasons = CodeTable{
	name: "hold_reason",
	messages: map[string]string{
		"RE009": "The billing address is incomplete.",
		"RE014": "The shipping address is incomplete.",
		"RE015": "The billing phone number is invalid.",
		"RE020": "The shipping phone number is invalid.",
		"RE021": "The buyer name could not be verified.",
		"RE023": "The delivery destination requires manual review.",
		"RE024": "The buyer has outstanding unpaid invoices.",
		"RE026": "The order amount exceeds the buyer's available credit.",
		"RE031": "The billing address could not be matched to the postal code.",
		"RE032": "The company name is required for this order.",
	},
}
