package api

// DeletePolicy records what DELETE means for an entity. The per-entity split is
// load-bearing: the UI relies on cancelled bookings staying visible and on
// clients/partners disappearing for real, so it must not be unified.
type DeletePolicy int

const (
	// HardDelete removes the row.
	HardDelete DeletePolicy = iota
	// SoftDeleteStatus mutates a status column and keeps the row.
	SoftDeleteStatus
	// SoftDeleteTimestampOnly touches updated_at and nothing else.
	SoftDeleteTimestampOnly
)

func (p DeletePolicy) String() string {
	switch p {
	case HardDelete:
		return "hard"
	case SoftDeleteStatus:
		return "soft-status"
	case SoftDeleteTimestampOnly:
		return "soft-timestamp"
	default:
		return "unknown"
	}
}
