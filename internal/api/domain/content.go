package domain

import "time"

// Discussion is a conversation thread, optionally attached to an organization.
type Discussion struct {
	ID        string
	Title     string
	Category  string
	OrgID     *string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Resource is a shared link or document, optionally attached to an organization.
type Resource struct {
	ID          string
	Name        string
	Description string
	URL         string
	OrgID       *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
