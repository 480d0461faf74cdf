// Package catalog loads per-domain item catalogs for the recommendation
// pipeline from an object store or Postgres, with an in-process cache.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"recommend-backend/internal/recommend"
)

var (
	// ErrUnknownDomain is returned when no catalog exists for a domain.
	ErrUnknownDomain = errors.New("unknown domain")
	// ErrInvalidCatalog is returned when a stored catalog fails validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Repo provides catalog items by domain. Returned slices are shared and
// must be treated as read-only.
type Repo interface {
	Load(ctx context.Context, domain string) ([]recommend.Item, error)
	Domains(ctx context.Context) ([]string, error)
}

func validate(domain string, items []recommend.Item) error {
	if err := recommend.ValidateItems(items); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, domain, err)
	}
	return nil
}
