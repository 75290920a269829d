package sqlite

import (
	"context"
	"database/sql"

	"github.com/activist-org/activist-api/internal/api/domain"
)

type resourcesRepo struct {
	db dbtx
}

const resourceColumns = `id, name, description, url, org_id, created_by, created_at, updated_at`

func (r *resourcesRepo) GetResourceByID(ctx context.Context, id string) (domain.Resource, error) {
	var (
		res   domain.Resource
		orgID sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT `+resourceColumns+` FROM resources WHERE id = ?`, id,
	).Scan(&res.ID, &res.Name, &res.Description, &res.URL, &orgID,
		&res.CreatedBy, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return domain.Resource{}, mapNotFound(err)
	}
	res.OrgID = mapNullString(orgID)
	return res, nil
}

func (r *resourcesRepo) ListResources(ctx context.Context) ([]domain.Resource, error) {
	return r.list(ctx,
		`SELECT `+resourceColumns+` FROM resources ORDER BY created_at DESC`)
}

func (r *resourcesRepo) ListOrganizationResources(ctx context.Context) ([]domain.Resource, error) {
	return r.list(ctx,
		`SELECT `+resourceColumns+` FROM resources WHERE org_id IS NOT NULL ORDER BY created_at DESC`)
}

func (r *resourcesRepo) list(ctx context.Context, query string) ([]domain.Resource, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Resource{}
	for rows.Next() {
		var (
			res   domain.Resource
			orgID sql.NullString
		)
		if err := rows.Scan(&res.ID, &res.Name, &res.Description, &res.URL,
			&orgID, &res.CreatedBy, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		res.OrgID = mapNullString(orgID)
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *resourcesRepo) CreateResource(ctx context.Context, res domain.Resource) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO resources (id, name, description, url, org_id, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.Name, res.Description, res.URL, mapOptionalString(res.OrgID),
		res.CreatedBy, res.CreatedAt, res.UpdatedAt,
	)
	return err
}

func (r *resourcesRepo) UpdateResource(ctx context.Context, res domain.Resource) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE resources SET name = ?, description = ?, url = ?, org_id = ?, updated_at = ? WHERE id = ?`,
		res.Name, res.Description, res.URL, mapOptionalString(res.OrgID), res.UpdatedAt, res.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *resourcesRepo) DeleteResource(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
