package domain

import "time"

// Organization is a top-level community on the platform.
type Organization struct {
	ID        string
	Name      string
	Slug      string
	Tagline   string
	Location  string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Group is a sub-community belonging to an organization.
type Group struct {
	ID        string
	OrgID     string
	Name      string
	Slug      string
	Location  string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
