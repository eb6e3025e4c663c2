package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/event"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
)

// StatusChange: полезная нагрузка события order.status_changed.
type StatusChange struct {
	OrderID uuid.UUID               `json:"order_id"`
	JobID   uuid.UUID               `json:"job_id"`
	From    valueobject.OrderStatus `json:"from"`
	To      valueobject.OrderStatus `json:"to"`
}

// Lifecycle проводит переход заказа и следующий за ним статус вакансии в одной транзакции.
type Lifecycle struct {
	uow       repository.UnitOfWork
	publisher event.Publisher
}

func NewLifecycle(uow repository.UnitOfWork, publisher event.Publisher) *Lifecycle {
	return &Lifecycle{uow: uow, publisher: publisher}
}

// lockJobAndOrder блокирует сначала вакансию, затем заказ.
func lockJobAndOrder(ctx context.Context, s repository.Store, orderID uuid.UUID) (*entity.Job, *entity.Order, error) {
	unlocked, err := s.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	job, err := s.Jobs().FindByIDForUpdate(ctx, unlocked.JobID)
	if err != nil {
		return nil, nil, err
	}
	order, err := s.Orders().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return job, order, nil
}

// followOrder переводит вакансию в completed/cancelled вслед за заказом.
func followOrder(job *entity.Job, order *entity.Order) (bool, error) {
	if job.Status != valueobject.JobStatusInProgress {
		return false, nil
	}
	switch order.Status {
	case valueobject.OrderStatusCompleted:
		return true, job.Complete()
	case valueobject.OrderStatusCancelled:
		return true, job.Cancel()
	}
	return false, nil
}

func (l *Lifecycle) transition(ctx context.Context, actor valueobject.Identity, orderID uuid.UUID, apply func(*entity.Order) error) (*entity.Order, error) {
	var (
		order *entity.Order
		from  valueobject.OrderStatus
	)

	err := l.uow.Do(ctx, func(s repository.Store) error {
		job, o, err := lockJobAndOrder(ctx, s, orderID)
		if err != nil {
			return err
		}
		from = o.Status
		if err := apply(o); err != nil {
			return err
		}
		if err := s.Orders().Update(ctx, o); err != nil {
			return err
		}

		changed, err := followOrder(job, o)
		if err != nil {
			return err
		}
		if changed {
			if err := s.Jobs().Update(ctx, job); err != nil {
				return err
			}
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.publisher.Publish([]uuid.UUID{order.ClientID, order.FreelancerID}, event.OrderStatusChanged, StatusChange{
		OrderID: order.ID,
		JobID:   order.JobID,
		From:    from,
		To:      order.Status,
	})
	logger.Log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"job_id":   order.JobID,
		"actor":    actor.UserID,
		"from":     from,
		"to":       order.Status,
	}).Info("статус заказа изменён")
	return order, nil
}
