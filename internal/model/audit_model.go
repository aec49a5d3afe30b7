package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogModel 成功異動後寫入的稽核紀錄
type AuditLogModel struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	ActorEmail string
	Action     string
	Entity     string
	EntityID   string
	Detail     string
	CreatedAt  time.Time
}
