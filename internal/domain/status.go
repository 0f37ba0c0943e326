package domain

import "time"

// OwnershipStatus is derived from an assignment's interval; it is never stored.
type OwnershipStatus string

const (
	StatusScheduled OwnershipStatus = "SCHEDULED"
	StatusActive    OwnershipStatus = "ACTIVE"
	StatusExpired   OwnershipStatus = "EXPIRED"
)

// ResolveStatus maps an interval and an instant to a status. The interval is
// inclusive on both ends; a nil end is open-ended.
func ResolveStatus(start time.Time, end *time.Time, now time.Time) OwnershipStatus {
	if now.Before(start) {
		return StatusScheduled
	}
	if end == nil || !now.After(*end) {
		return StatusActive
	}
	return StatusExpired
}
