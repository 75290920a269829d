package sqlite

import (
	"context"

	"github.com/activist-org/activist-api/internal/api/domain"
)

type eventsRepo struct {
	db dbtx
}

const eventColumns = `id, name, slug, tagline, description, type, location,
	start_time, end_time, created_by, created_at, updated_at`

func (r *eventsRepo) GetEventByID(ctx context.Context, id string) (domain.Event, error) {
	var (
		e   domain.Event
		typ string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.Slug, &e.Tagline, &e.Description, &typ, &e.Location,
		&e.StartTime, &e.EndTime, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Event{}, mapNotFound(err)
	}
	e.Type = domain.EventType(typ)
	return e, nil
}

func (r *eventsRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY start_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Event{}
	for rows.Next() {
		var (
			e   domain.Event
			typ string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Slug, &e.Tagline, &e.Description,
			&typ, &e.Location, &e.StartTime, &e.EndTime, &e.CreatedBy,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.Type = domain.EventType(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, name, slug, tagline, description, type, location,
			start_time, end_time, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Slug, e.Tagline, e.Description, string(e.Type), e.Location,
		e.StartTime, e.EndTime, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *eventsRepo) UpdateEvent(ctx context.Context, e domain.Event) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events
		 SET name = ?, slug = ?, tagline = ?, description = ?, type = ?,
		     location = ?, start_time = ?, end_time = ?, updated_at = ?
		 WHERE id = ?`,
		e.Name, e.Slug, e.Tagline, e.Description, string(e.Type), e.Location,
		e.StartTime, e.EndTime, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *eventsRepo) DeleteEvent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
