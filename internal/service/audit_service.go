package service

import (
	"context"
	"reflect"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/audit"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IAuditService 成功異動後留存稽核軌跡
// Record 為 best effort, 寫入失敗不影響主流程
type IAuditService interface {
	Record(ctx context.Context, principal model.Principal, action, entity, entityID, detail string)
	ListLogs(ctx context.Context, page, pageSize int) ([]model.AuditLogModel, error)
}

type AuditService struct {
	store     db.IStore
	publisher audit.IPublisher
	logger    *zerolog.Logger
}

func NewAuditService(store db.IStore, publisher audit.IPublisher, logger *zerolog.Logger) IAuditService {
	if reflect.ValueOf(store).IsNil() {
		panic("audit service initialization failed: store cannot be nil")
	}
	if publisher == nil {
		publisher = audit.NopPublisher{}
	}
	return &AuditService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *AuditService) Record(ctx context.Context, principal model.Principal, action, entity, entityID, detail string) {
	entry := model.AuditLogModel{
		ID:         uuid.New(),
		ActorID:    principal.UserID,
		ActorEmail: principal.Email,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.store.CreateAuditLog(ctx, entry); err != nil {
		if s.logger != nil {
			s.logger.Error().Err(err).
				Str("action", action).
				Str("entity", entity).
				Msg("failed to persist audit log")
		}
		return
	}

	s.publisher.Publish(ctx, entry)
}

func (s *AuditService) ListLogs(ctx context.Context, page, pageSize int) ([]model.AuditLogModel, error) {
	limit, offset := normalizePaging(page, pageSize)
	logs, err := s.store.ListAuditLogs(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to list audit logs", err)
	}
	return logs, nil
}
