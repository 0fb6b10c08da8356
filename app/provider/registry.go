package provider

import (
	"errors"
	"strings"
)

var ErrProviderNotSupported = errors.New("provider is not supported")

type Registry struct {
	providers   map[string]Provider
	defaultCode string
}

// NewRegistry indexes providers by code. The first provider is the default one.
func NewRegistry(providers ...Provider) *Registry {
	items := make(map[string]Provider, len(providers))
	defaultCode := ""
	for _, p := range providers {
		items[p.Code()] = p
		if defaultCode == "" {
			defaultCode = p.Code()
		}
	}
	return &Registry{providers: items, defaultCode: defaultCode}
}

func (r *Registry) Get(code string) (Provider, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		code = r.defaultCode
	}
	provider, ok := r.providers[code]
	if !ok {
		return nil, ErrProviderNotSupported
	}
	return provider, nil
}
