package sqlite

import (
	"context"

	"github.com/activist-org/activist-api/internal/api/domain"
)

type flagsRepo struct {
	db dbtx
}

func (r *flagsRepo) GetFlagByID(ctx context.Context, id string) (domain.Flag, error) {
	var (
		f    domain.Flag
		kind string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, target_kind, target_id, created_by, created_at FROM flags WHERE id = ?`, id,
	).Scan(&f.ID, &kind, &f.TargetID, &f.CreatedBy, &f.CreatedAt)
	if err != nil {
		return domain.Flag{}, mapNotFound(err)
	}
	f.TargetKind = domain.FlagTarget(kind)
	return f, nil
}

func (r *flagsRepo) ListFlagsByKind(ctx context.Context, kind domain.FlagTarget) ([]domain.Flag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, target_kind, target_id, created_by, created_at
		 FROM flags WHERE target_kind = ? ORDER BY created_at DESC`,
		string(kind),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Flag{}
	for rows.Next() {
		var (
			f domain.Flag
			k string
		)
		if err := rows.Scan(&f.ID, &k, &f.TargetID, &f.CreatedBy, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.TargetKind = domain.FlagTarget(k)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *flagsRepo) CreateFlag(ctx context.Context, f domain.Flag) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO flags (id, target_kind, target_id, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		f.ID, string(f.TargetKind), f.TargetID, f.CreatedBy, f.CreatedAt,
	)
	return err
}

func (r *flagsRepo) DeleteFlag(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flags WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
