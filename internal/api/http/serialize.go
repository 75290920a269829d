package http

import (
	"time"

	"github.com/activist-org/activist-api/internal/api/domain"
)

// Wire representations. Domain structs stay JSON-free; the HTTP layer owns
// field names and time formatting (RFC 3339, UTC).

type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	Confirmed bool   `json:"is_confirmed"`
	Verified  bool   `json:"is_verified"`
	Staff     bool   `json:"is_staff"`
	Admin     bool   `json:"is_admin"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Status:    string(u.Status),
		Confirmed: u.Confirmed,
		Verified:  u.Verified,
		Staff:     u.Staff,
		Admin:     u.Admin,
	}
}

type organizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Tagline   string    `json:"tagline"`
	Location  string    `json:"location"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toOrganizationResponse(o domain.Organization) organizationResponse {
	return organizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		Tagline:   o.Tagline,
		Location:  o.Location,
		CreatedBy: o.CreatedBy,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toOrganizationResponses(orgs []domain.Organization) []organizationResponse {
	out := make([]organizationResponse, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, toOrganizationResponse(o))
	}
	return out
}

type groupResponse struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Location  string    `json:"location"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toGroupResponse(g domain.Group) groupResponse {
	return groupResponse{
		ID:        g.ID,
		OrgID:     g.OrgID,
		Name:      g.Name,
		Slug:      g.Slug,
		Location:  g.Location,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func toGroupResponses(groups []domain.Group) []groupResponse {
	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	return out
}

type eventResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Tagline     string    `json:"tagline"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Slug:        e.Slug,
		Tagline:     e.Tagline,
		Description: e.Description,
		Type:        string(e.Type),
		Location:    e.Location,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEventResponses(events []domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

type discussionResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	OrgID     *string   `json:"org_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDiscussionResponse(d domain.Discussion) discussionResponse {
	return discussionResponse{
		ID:        d.ID,
		Title:     d.Title,
		Category:  d.Category,
		OrgID:     d.OrgID,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toDiscussionResponses(discussions []domain.Discussion) []discussionResponse {
	out := make([]discussionResponse, 0, len(discussions))
	for _, d := range discussions {
		out = append(out, toDiscussionResponse(d))
	}
	return out
}

type resourceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	OrgID       *string   `json:"org_id"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResourceResponse(r domain.Resource) resourceResponse {
	return resourceResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		URL:         r.URL,
		OrgID:       r.OrgID,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toResourceResponses(resources []domain.Resource) []resourceResponse {
	out := make([]resourceResponse, 0, len(resources))
	for _, r := range resources {
		out = append(out, toResourceResponse(r))
	}
	return out
}

type flagResponse struct {
	ID         string    `json:"id"`
	TargetKind string    `json:"target_kind"`
	TargetID   string    `json:"target_id"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func toFlagResponse(f domain.Flag) flagResponse {
	return flagResponse{
		ID:         f.ID,
		TargetKind: string(f.TargetKind),
		TargetID:   f.TargetID,
		CreatedBy:  f.CreatedBy,
		CreatedAt:  f.CreatedAt,
	}
}

func toFlagResponses(flags []domain.Flag) []flagResponse {
	out := make([]flagResponse, 0, len(flags))
	for _, f := range flags {
		out = append(out, toFlagResponse(f))
	}
	return out
}
