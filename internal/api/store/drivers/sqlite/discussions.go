package sqlite

import (
	"context"
	"database/sql"

	"github.com/activist-org/activist-api/internal/api/domain"
)

type discussionsRepo struct {
	db dbtx
}

const discussionColumns = `id, title, category, org_id, created_by, created_at, updated_at`

func (r *discussionsRepo) GetDiscussionByID(ctx context.Context, id string) (domain.Discussion, error) {
	var (
		d     domain.Discussion
		orgID sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT `+discussionColumns+` FROM discussions WHERE id = ?`, id,
	).Scan(&d.ID, &d.Title, &d.Category, &orgID, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Discussion{}, mapNotFound(err)
	}
	d.OrgID = mapNullString(orgID)
	return d, nil
}

func (r *discussionsRepo) ListDiscussions(ctx context.Context) ([]domain.Discussion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+discussionColumns+` FROM discussions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Discussion{}
	for rows.Next() {
		var (
			d     domain.Discussion
			orgID sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.Title, &d.Category, &orgID, &d.CreatedBy,
			&d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.OrgID = mapNullString(orgID)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *discussionsRepo) CreateDiscussion(ctx context.Context, d domain.Discussion) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO discussions (id, title, category, org_id, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Title, d.Category, mapOptionalString(d.OrgID), d.CreatedBy, d.CreatedAt, d.UpdatedAt,
	)
	return err
}

func (r *discussionsRepo) UpdateDiscussion(ctx context.Context, d domain.Discussion) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE discussions SET title = ?, category = ?, org_id = ?, updated_at = ? WHERE id = ?`,
		d.Title, d.Category, mapOptionalString(d.OrgID), d.UpdatedAt, d.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *discussionsRepo) DeleteDiscussion(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM discussions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
