package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
)

type DisputeRepository interface {
	Create(ctx context.Context, dispute *entity.Dispute) error
	Update(ctx context.Context, dispute *entity.Dispute) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Dispute, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Dispute, error)
	// FindOpenByOrder возвращает nil, nil если открытого спора нет.
	FindOpenByOrder(ctx context.Context, orderID uuid.UUID) (*entity.Dispute, error)
	List(ctx context.Context, filter DisputeFilter) ([]*DisputeView, int, error)
	CountOpen(ctx context.Context) (int, error)
}

type DisputeFilter struct {
	Status string
	// Search ищет по причине спора и названию вакансии.
	Search string
	Limit  int
	Offset int
}

type DisputeView struct {
	*entity.Dispute
	JobID    uuid.UUID
	JobTitle string
}
