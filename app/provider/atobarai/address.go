package atobarai

import (
	"context"
	"strings"

	"github.com/vibast-solutions/ms-go-atobarai/app/postal"
	"github.com/vibast-solutions/ms-go-atobarai/app/provider"
)

const (
	japanCallingCode = "+81"
	trunkPrefix      = "0"
)

// FormatName writes the name in the order NP Atobarai prints it on invoices.
func FormatName(a *provider.AddressData) string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// FormatAddress follows the Japanese convention of going from the largest
// administrative unit to the building, with no separators, e.g.
// "東京都千代田区麹町４－２－６住友不動産麹町ファーストビル５階".
func FormatAddress(ctx context.Context, lookup postal.Lookup, a *provider.AddressData) (string, error) {
	locality, err := lookup.Lookup(ctx, a.PostalCode)
	if err != nil {
		return "", err
	}
	return a.CountryArea +
		locality.City +
		locality.Neighborhood +
		a.StreetAddress2 +
		a.StreetAddress1, nil
}

func normalizePhone(phone string) string {
	return strings.ReplaceAll(phone, japanCallingCode, trunkPrefix)
}
