package yamlfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type catalogFile struct {
	Products []domain.Product `yaml:"products"`
}

// ProductSource reads the catalog from a YAML document of the form
// `products: [{id, name, description, category, price}]`.
type ProductSource struct {
	open func() (io.ReadCloser, error)
	name string
}

func NewFileSource(path string) *ProductSource {
	return &ProductSource{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

func NewBytesSource(name string, data []byte) *ProductSource {
	return &ProductSource{
		name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

func (s *ProductSource) Load(_ context.Context) ([]domain.Product, error) {
	r, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", s.name, err)
	}
	defer r.Close()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Product{}, nil
		}
		return nil, fmt.Errorf("decode catalog %s: %w", s.name, err)
	}
	if f.Products == nil {
		return []domain.Product{}, nil
	}
	return f.Products, nil
}
