package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Event 發布到kafka的稽核事件
type Event struct {
	ActorID    string    `json:"actor_id"`
	ActorEmail string    `json:"actor_email"`
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// IPublisher 異動commit後才呼叫, 發布失敗只記log不影響主流程
type IPublisher interface {
	Publish(ctx context.Context, entry model.AuditLogModel)
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
	logger *zerolog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zerolog.Logger) IPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 5 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return &kafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, entry model.AuditLogModel) {
	event := Event{
		ActorID:    entry.ActorID.String(),
		ActorEmail: entry.ActorEmail,
		Action:     entry.Action,
		Entity:     entry.Entity,
		EntityID:   entry.EntityID,
		Detail:     entry.Detail,
		OccurredAt: entry.CreatedAt,
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to marshal audit event")
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.Entity + ":" + entry.EntityID),
		Value: value,
	})
	if err != nil {
		p.logger.Error().Err(err).
			Str("action", entry.Action).
			Str("entity", entry.Entity).
			Msg("failed to publish audit event")
	}
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher 未設定kafka時使用
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, entry model.AuditLogModel) {}

func (NopPublisher) Close() error { return nil }
