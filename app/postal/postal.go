// Package postal resolves Japanese postal codes to the locality names used
// when writing a deliverable address.
package postal

import (
	"context"
	"errors"
	"strings"
)

var ErrPostalCodeNotFound = errors.New("postal code not found")

type Locality struct {
	PostalCode   string `json:"postal_code" yaml:"postal_code"`
	Prefecture   string `json:"prefecture" yaml:"prefecture"`
	City         string `json:"city" yaml:"city"`
	Neighborhood string `json:"neighborhood" yaml:"neighborhood"`
}

type Lookup interface {
	Lookup(ctx context.Context, postalCode string) (*Locality, error)
}

// NormalizeCode strips separators so that "102-0083", "〒102-0083" and
// "1020083" resolve to the same key.
func NormalizeCode(postalCode string) string {
	var b strings.Builder
	for _, r := range postalCode {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '０' && r <= '９':
			b.WriteRune('0' + (r - '０'))
		}
	}
	return b.String()
}
