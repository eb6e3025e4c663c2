package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

type OrderPage struct {
	Orders []*repository.OrderView
	Total  int
}

type GetOrderUseCase struct {
	store repository.Store
}

func NewGetOrderUseCase(store repository.Store) *GetOrderUseCase {
	return &GetOrderUseCase{store: store}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, actor valueobject.Identity, orderID uuid.UUID) (*entity.Order, error) {
	order, err := uc.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanView(actor) {
		return nil, apperror.ErrOrderNotFound
	}
	return order, nil
}

type ListOrdersInput struct {
	Status string
	Search string
	Limit  int
	Offset int
}

type ListOrdersUseCase struct {
	store repository.Store
}

func NewListOrdersUseCase(store repository.Store) *ListOrdersUseCase {
	return &ListOrdersUseCase{store: store}
}

// Execute: заказчик видит свои заказы, исполнитель свои, администратор все.
func (uc *ListOrdersUseCase) Execute(ctx context.Context, actor valueobject.Identity, input ListOrdersInput) (*OrderPage, error) {
	if input.Status != "" {
		if _, err := valueobject.NewOrderStatus(input.Status); err != nil {
			return nil, err
		}
	}
	filter := repository.OrderFilter{
		Status: input.Status,
		Search: input.Search,
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	switch actor.Role {
	case valueobject.RoleClient:
		filter.ClientID = &actor.UserID
	case valueobject.RoleFreelancer:
		filter.FreelancerID = &actor.UserID
	case valueobject.RoleAdmin:
	default:
		return nil, apperror.ErrForbidden
	}

	orders, total, err := uc.store.Orders().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Total: total}, nil
}

type DeleteOrderUseCase struct {
	uow repository.UnitOfWork
}

func NewDeleteOrderUseCase(uow repository.UnitOfWork) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{uow: uow}
}

// Execute удаляет строку заказа, споры уходят каскадом. Если заказ был живым,
// вакансия отменяется, чтобы вакансия в работе всегда имела заказ.
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, actor valueobject.Identity, orderID uuid.UUID) error {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return err
	}
	var jobID uuid.UUID
	err := uc.uow.Do(ctx, func(s repository.Store) error {
		job, order, err := lockJobAndOrder(ctx, s, orderID)
		if err != nil {
			return err
		}
		jobID = job.ID
		if err := s.Orders().Delete(ctx, order.ID); err != nil {
			return err
		}
		if !order.Status.IsTerminal() && job.Status == valueobject.JobStatusInProgress {
			if err := job.Cancel(); err != nil {
				return err
			}
			return s.Jobs().Update(ctx, job)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{"order_id": orderID, "job_id": jobID, "actor": actor.UserID}).Warn("заказ удалён")
	return nil
}
