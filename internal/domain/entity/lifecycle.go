package entity

// Lifecycle is the soft-delete state shared by every owned record.
// DELETED rows stay in storage forever and are excluded from all default
// queries; only notes ever reach ARCHIVED.
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "ACTIVE"
	LifecycleArchived Lifecycle = "ARCHIVED"
	LifecycleDeleted  Lifecycle = "DELETED"
)

// Priority is shared by clients, appointments and notes.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)
