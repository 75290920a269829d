package sqlite

import (
	"context"

	"github.com/activist-org/activist-api/internal/api/domain"
)

type organizationsRepo struct {
	db dbtx
}

const organizationColumns = `id, name, slug, tagline, location, created_by, created_at, updated_at`

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	var o domain.Organization
	err := r.db.QueryRowContext(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = ?`, id,
	).Scan(&o.ID, &o.Name, &o.Slug, &o.Tagline, &o.Location, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return o, nil
}

func (r *organizationsRepo) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+organizationColumns+` FROM organizations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Organization{}
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Slug, &o.Tagline, &o.Location,
			&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organizations (id, name, slug, tagline, location, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Slug, o.Tagline, o.Location, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *organizationsRepo) UpdateOrganization(ctx context.Context, o domain.Organization) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE organizations
		 SET name = ?, slug = ?, tagline = ?, location = ?, updated_at = ?
		 WHERE id = ?`,
		o.Name, o.Slug, o.Tagline, o.Location, o.UpdatedAt, o.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *organizationsRepo) DeleteOrganization(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
