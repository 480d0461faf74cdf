package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"recommend-backend/internal/recommend"
	"recommend-backend/internal/shared/storage/object"
	"recommend-backend/internal/shared/util"
)

const (
	catalogSuffix = ".json"
	// maxCatalogBytes guards against decoding an unexpectedly huge object.
	maxCatalogBytes = 16 << 20
)

// ObjectRepo reads <domain>.json documents, each a JSON array of items.
type ObjectRepo struct {
	Store object.ObjectStore
}

// NewObjectRepo builds a repo over store.
func NewObjectRepo(store object.ObjectStore) *ObjectRepo {
	return &ObjectRepo{Store: store}
}

func (r *ObjectRepo) Load(ctx context.Context, domain string) ([]recommend.Item, error) {
	name, err := util.SanitizeDomain(domain)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
	rc, err := r.Store.Open(ctx, name+catalogSuffix)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, name)
		}
		return nil, fmt.Errorf("open catalog %s: %w", name, err)
	}
	defer rc.Close()

	items, err := Decode(io.LimitReader(rc, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, name, err)
	}
	if err := validate(name, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ObjectRepo) Domains(ctx context.Context) ([]string, error) {
	keys, err := r.Store.List(ctx, catalogSuffix)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	domains := make([]string, 0, len(keys))
	for _, k := range keys {
		name, err := util.SanitizeDomain(strings.TrimSuffix(k, catalogSuffix))
		if err != nil {
			continue
		}
		domains = append(domains, name)
	}
	return domains, nil
}

// Save validates items and writes them as the catalog for domain.
func (r *ObjectRepo) Save(ctx context.Context, domain string, items []recommend.Item) error {
	name, err := util.SanitizeDomain(domain)
	if err != nil {
		return err
	}
	if err := validate(name, items); err != nil {
		return err
	}
	body, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if _, err := r.Store.Put(ctx, name+catalogSuffix, "application/json", bytes.NewReader(body)); err != nil {
		return fmt.Errorf("store catalog %s: %w", name, err)
	}
	return nil
}

// Decode reads a JSON array of items. Unknown fields are rejected so a
// misspelled key does not silently default to zero.
func Decode(r io.Reader) ([]recommend.Item, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var items []recommend.Item
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

var _ Repo = (*ObjectRepo)(nil)
