package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.Message, error)
	MarkRead(ctx context.Context, jobID, receiverID uuid.UUID) (int64, error)
}
