package model

import "time"

type AuditAction string

const (
	AuditActionCreate     AuditAction = "create"
	AuditActionUpdate     AuditAction = "update"
	AuditActionSoftDelete AuditAction = "soft_delete"
)

// AuditLog is an append-only before/after snapshot of a write. Rows are
// never updated or deleted through normal flow.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	EntityType string `gorm:"type:varchar(50);index:idx_audit_entity" json:"entity_type"`
	EntityID   string `gorm:"type:varchar(64);index:idx_audit_entity" json:"entity_id"`

	Action AuditAction `gorm:"type:varchar(20)" json:"action"`

	// Actor id and denormalized display name
	ActorID   string `gorm:"type:varchar(64)" json:"actor_id"`
	ActorName string `gorm:"type:varchar(255)" json:"actor_name"`

	// Before/after snapshots as JSON; "null" for the missing side
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
