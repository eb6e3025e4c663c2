package dispute

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/event"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

type OpenDisputeUseCase struct {
	uow       repository.UnitOfWork
	publisher event.Publisher
}

func NewOpenDisputeUseCase(uow repository.UnitOfWork, publisher event.Publisher) *OpenDisputeUseCase {
	return &OpenDisputeUseCase{uow: uow, publisher: publisher}
}

// Execute открывает спор по заказу. Второй открытый спор по тому же заказу даёт Conflict.
func (uc *OpenDisputeUseCase) Execute(ctx context.Context, actor valueobject.Identity, orderID uuid.UUID, reason string) (*entity.Dispute, error) {
	var dispute *entity.Dispute
	err := uc.uow.Do(ctx, func(s repository.Store) error {
		order, err := s.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		d, err := entity.NewDispute(order, actor.UserID, reason)
		if err != nil {
			return err
		}
		existing, err := s.Disputes().FindOpenByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.ErrDisputeOpen
		}
		if err := s.Disputes().Create(ctx, d); err != nil {
			return err
		}
		dispute = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish([]uuid.UUID{dispute.ClientID, dispute.FreelancerID}, event.DisputeOpened, dispute)
	logger.Log.WithFields(logrus.Fields{
		"dispute_id": dispute.ID,
		"order_id":   dispute.OrderID,
		"actor":      actor.UserID,
	}).Info("открыт спор")
	return dispute, nil
}
