package sqlite

import (
	"context"

	"github.com/activist-org/activist-api/internal/api/domain"
)

type groupsRepo struct {
	db dbtx
}

const groupColumns = `id, org_id, name, slug, location, created_by, created_at, updated_at`

func (r *groupsRepo) GetGroupByID(ctx context.Context, id string) (domain.Group, error) {
	var g domain.Group
	err := r.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = ?`, id,
	).Scan(&g.ID, &g.OrgID, &g.Name, &g.Slug, &g.Location, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return domain.Group{}, mapNotFound(err)
	}
	return g, nil
}

func (r *groupsRepo) ListGroups(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+groupColumns+` FROM groups ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Group{}
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.OrgID, &g.Name, &g.Slug, &g.Location,
			&g.CreatedBy, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *groupsRepo) CreateGroup(ctx context.Context, g domain.Group) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO groups (id, org_id, name, slug, location, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.OrgID, g.Name, g.Slug, g.Location, g.CreatedBy, g.CreatedAt, g.UpdatedAt,
	)
	return err
}

func (r *groupsRepo) UpdateGroup(ctx context.Context, g domain.Group) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE groups
		 SET org_id = ?, name = ?, slug = ?, location = ?, updated_at = ?
		 WHERE id = ?`,
		g.OrgID, g.Name, g.Slug, g.Location, g.UpdatedAt, g.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *groupsRepo) DeleteGroup(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
