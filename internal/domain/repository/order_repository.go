package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// FindActiveByJobForUpdate возвращает незавершённый заказ вакансии или nil, nil.
	FindActiveByJobForUpdate(ctx context.Context, jobID uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*OrderView, int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type OrderFilter struct {
	ClientID     *uuid.UUID
	FreelancerID *uuid.UUID
	Status       string
	// Search ищет по названию вакансии.
	Search string
	Limit  int
	Offset int
}

// OrderView: заказ вместе с названием вакансии для списков.
type OrderView struct {
	*entity.Order
	JobTitle string
}
