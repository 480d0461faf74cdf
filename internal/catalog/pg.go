package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"recommend-backend/internal/recommend"
	"recommend-backend/internal/shared/util"
)

// PGRepo reads catalogs from the catalog_items table.
type PGRepo struct {
	DB *sql.DB

	types *pgtype.Map
}

// NewPGRepo builds a repo over db.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db, types: pgtype.NewMap()}
}

func (r *PGRepo) Load(ctx context.Context, domain string) ([]recommend.Item, error) {
	name, err := util.SanitizeDomain(domain)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
	typeMap := r.types
	if typeMap == nil {
		typeMap = pgtype.NewMap()
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, category, price, time_minutes, comfort_score, exploration_score, tags, description
		FROM catalog_items
		WHERE domain = $1
		ORDER BY position, id`, name)
	if err != nil {
		return nil, fmt.Errorf("query catalog %s: %w", name, err)
	}
	defer rows.Close()

	var items []recommend.Item
	for rows.Next() {
		var it recommend.Item
		if err := rows.Scan(
			&it.ID,
			&it.Name,
			&it.Category,
			&it.Price,
			&it.TimeCost,
			&it.ComfortAffinity,
			&it.ExplorationAffinity,
			typeMap.SQLScanner(&it.Tags),
			&it.Description,
		); err != nil {
			return nil, fmt.Errorf("scan catalog %s: %w", name, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog %s: %w", name, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, name)
	}
	if err := validate(name, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepo) Domains(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT DISTINCT domain FROM catalog_items ORDER BY domain`)
	if err != nil {
		return nil, fmt.Errorf("query domains: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	return domains, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
