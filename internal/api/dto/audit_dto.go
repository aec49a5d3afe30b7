package dto

import (
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
)

type AuditLogDTO struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	ActorEmail string    `json:"actor_email"`
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ConvertAuditLogModelsToDTO(models []model.AuditLogModel) []AuditLogDTO {
	out := make([]AuditLogDTO, 0, len(models))
	for _, m := range models {
		out = append(out, AuditLogDTO{
			ID:         m.ID.String(),
			ActorID:    m.ActorID.String(),
			ActorEmail: m.ActorEmail,
			Action:     m.Action,
			Entity:     m.Entity,
			EntityID:   m.EntityID,
			Detail:     m.Detail,
			CreatedAt:  m.CreatedAt,
		})
	}
	return out
}
