package store

import (
	"context"
	"errors"
	"time"

	"github.com/activist-org/activist-api/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Sessions() Sessions
	Organizations() Organizations
	Groups() Groups
	Events() Events
	Discussions() Discussions
	Resources() Resources
	Flags() Flags

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error, the
	// transaction is rolled back; otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during sign-in.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByVerificationCode returns the user holding an outstanding
	// email verification code.
	GetUserByVerificationCode(ctx context.Context, code string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// ConfirmUser marks the account confirmed and active and clears the
	// verification code.
	ConfirmUser(ctx context.Context, userID string) error

	// UpdateStatus changes the moderation status of an account.
	UpdateStatus(ctx context.Context, userID string, status domain.UserStatus) error

	// SetStaff grants or revokes the staff bit.
	SetStaff(ctx context.Context, userID string, staff bool) error

	// DeleteUser cascades to sessions and flags (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Sessions interface {
	// CreateSession stores a new session token record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns a non-expired session by its fingerprint.
	GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// DeleteSessionByTokenHash removes a session. Deleting an absent
	// session is not an error (sign-out is idempotent).
	DeleteSessionByTokenHash(ctx context.Context, hash string) error

	// DeleteUserSessions removes every session bound to a user.
	DeleteUserSessions(ctx context.Context, userID string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}

type Organizations interface {
	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	CreateOrganization(ctx context.Context, o domain.Organization) error
	UpdateOrganization(ctx context.Context, o domain.Organization) error
	DeleteOrganization(ctx context.Context, id string) error
}

type Groups interface {
	GetGroupByID(ctx context.Context, id string) (domain.Group, error)
	ListGroups(ctx context.Context) ([]domain.Group, error)
	CreateGroup(ctx context.Context, g domain.Group) error
	UpdateGroup(ctx context.Context, g domain.Group) error
	DeleteGroup(ctx context.Context, id string) error
}

type Events interface {
	GetEventByID(ctx context.Context, id string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreateEvent(ctx context.Context, e domain.Event) error
	UpdateEvent(ctx context.Context, e domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

type Discussions interface {
	GetDiscussionByID(ctx context.Context, id string) (domain.Discussion, error)
	ListDiscussions(ctx context.Context) ([]domain.Discussion, error)
	CreateDiscussion(ctx context.Context, d domain.Discussion) error
	UpdateDiscussion(ctx context.Context, d domain.Discussion) error
	DeleteDiscussion(ctx context.Context, id string) error
}

type Resources interface {
	GetResourceByID(ctx context.Context, id string) (domain.Resource, error)
	ListResources(ctx context.Context) ([]domain.Resource, error)

	// ListOrganizationResources returns only resources attached to an
	// organization.
	ListOrganizationResources(ctx context.Context) ([]domain.Resource, error)

	CreateResource(ctx context.Context, r domain.Resource) error
	UpdateResource(ctx context.Context, r domain.Resource) error
	DeleteResource(ctx context.Context, id string) error
}

type Flags interface {
	GetFlagByID(ctx context.Context, id string) (domain.Flag, error)
	ListFlagsByKind(ctx context.Context, kind domain.FlagTarget) ([]domain.Flag, error)
	CreateFlag(ctx context.Context, f domain.Flag) error
	DeleteFlag(ctx context.Context, id string) error
}
