package domain

import "time"

// FlagTarget is the set of entity kinds a moderation flag may reference.
type FlagTarget string

const (
	FlagTargetOrganization FlagTarget = "organization"
	FlagTargetGroup        FlagTarget = "group"
	FlagTargetEvent        FlagTarget = "event"
	FlagTargetResource     FlagTarget = "resource"
	FlagTargetUser         FlagTarget = "user"
)

// ValidFlagTarget reports whether t names a flaggable entity kind.
func ValidFlagTarget(t FlagTarget) bool {
	switch t {
	case FlagTargetOrganization, FlagTargetGroup, FlagTargetEvent,
		FlagTargetResource, FlagTargetUser:
		return true
	}
	return false
}

// Flag is a moderation report attached to an entity by a user.
type Flag struct {
	ID         string
	TargetKind FlagTarget
	TargetID   string
	CreatedBy  string
	CreatedAt  time.Time
}
