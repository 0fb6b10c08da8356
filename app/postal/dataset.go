package postal

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/postal_codes.yaml
var embeddedDataset []byte

type Dataset struct {
	localities map[string]Locality
}

type datasetFile struct {
	Localities []Locality `yaml:"localities"`
}

// LoadDataset reads a YAML dataset from path. An empty path loads the
// dataset bundled with the binary.
func LoadDataset(path string) (*Dataset, error) {
	raw := embeddedDataset
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = content
	}
	return ParseDataset(raw)
}

func ParseDataset(raw []byte) (*Dataset, error) {
	var file datasetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse postal dataset: %w", err)
	}

	items := make(map[string]Locality, len(file.Localities))
	for _, item := range file.Localities {
		code := NormalizeCode(item.PostalCode)
		if len(code) != 7 {
			return nil, fmt.Errorf("parse postal dataset: invalid postal code %q", item.PostalCode)
		}
		item.PostalCode = code
		items[code] = item
	}

	return &Dataset{localities: items}, nil
}

func NewDataset(localities ...Locality) *Dataset {
	items := make(map[string]Locality, len(localities))
	for _, item := range localities {
		item.PostalCode = NormalizeCode(item.PostalCode)
		items[item.PostalCode] = item
	}
	return &Dataset{localities: items}
}

func (d *Dataset) Lookup(_ context.Context, postalCode string) (*Locality, error) {
	code := NormalizeCode(postalCode)
	item, ok := d.localities[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPostalCodeNotFound, postalCode)
	}
	return &item, nil
}

func (d *Dataset) Len() int {
	return len(d.localities)
}
