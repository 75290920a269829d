package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/activist-org/activist-api/internal/api/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, password_hash, status, is_confirmed,
	is_verified, is_staff, is_admin, verification_code, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) GetUserByVerificationCode(ctx context.Context, code string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE verification_code = ?`, code)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, status, is_confirmed,
			is_verified, is_staff, is_admin, verification_code, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, string(u.Status), u.Confirmed,
		u.Verified, u.Staff, u.Admin, mapOptionalString(u.VerificationCode),
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *usersRepo) ConfirmUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET is_confirmed = 1, status = ?, verification_code = NULL, updated_at = ?
		 WHERE id = ?`,
		string(domain.UserStatusActive), time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) UpdateStatus(ctx context.Context, userID string, status domain.UserStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) SetStaff(ctx context.Context, userID string, staff bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_staff = ?, updated_at = ? WHERE id = ?`,
		staff, time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	return err
}

// rowScanner lets scanUser work with both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u      domain.User
		status string
		code   sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &status, &u.Confirmed,
		&u.Verified, &u.Staff, &u.Admin, &code, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Status = domain.UserStatus(status)
	u.VerificationCode = mapNullString(code)
	return u, nil
}
