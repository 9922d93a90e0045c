// Package outboxrepo stores order events in the order_events table until the
// relay job has handed them to the broker.
package outboxrepo

import (
	"context"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventType   string     `gorm:"type:varchar(64);not null"`
	Payload     string     `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

func (OutboxMessageDTO) TableName() string {
	return "order_events"
}

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, msg ports.OutboxMessage) error {
	if err := msg.ID.Validate(); err != nil {
		return err
	}

	dto := OutboxMessageDTO{
		ID:          msg.ID.Bytes(),
		AggregateID: msg.AggregateID.Bytes(),
		EventType:   msg.EventType,
		Payload:     string(msg.Payload),
		CreatedAt:   msg.CreatedAt,
		PublishedAt: msg.PublishedAt,
	}
	if dto.CreatedAt.IsZero() {
		dto.CreatedAt = time.Now()
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnpublished locks the returned rows with SKIP LOCKED, so two relays never
// pick up the same message.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	msgs := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		msg, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		msgs = append(msgs, msg)
	}

	return msgs, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", raw).
		Update("published_at", at).Error
}

func toDomain(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFrom(dto.ID)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFrom(dto.AggregateID)
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		AggregateID: aggregateID,
		EventType:   dto.EventType,
		Payload:     []byte(dto.Payload),
		CreatedAt:   dto.CreatedAt,
		PublishedAt: dto.PublishedAt,
	}, nil
}
