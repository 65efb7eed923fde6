package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionMove   AuditAction = "MOVE"
)

// AuditLog rows hang off tasks and milestones and must be removed before
// their parent entity to satisfy referential constraints.
type AuditLog struct {
	ID         uint64      `gorm:"primarykey" json:"id"`
	EntityType string      `gorm:"type:varchar(30);not null" json:"entity_type"`
	EntityID   uint64      `gorm:"not null" json:"entity_id"`
	Action     AuditAction `gorm:"type:varchar(20);not null" json:"action"`
	ActorID    uint64      `json:"actor_id"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Entity type values used in audit rows.
const (
	AuditEntityTask      = "task"
	AuditEntityMilestone = "milestone"
)
