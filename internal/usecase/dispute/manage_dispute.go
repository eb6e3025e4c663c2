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
)

// moderate блокирует спор, применяет изменение администратора и сообщает участникам.
func moderate(ctx context.Context, uow repository.UnitOfWork, publisher event.Publisher, actor valueobject.Identity, id uuid.UUID, apply func(*entity.Dispute) error) (*entity.Dispute, error) {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return nil, err
	}
	var dispute *entity.Dispute
	err := uow.Do(ctx, func(s repository.Store) error {
		d, err := s.Disputes().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(d); err != nil {
			return err
		}
		if err := s.Disputes().Update(ctx, d); err != nil {
			return err
		}
		dispute = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	publisher.Publish([]uuid.UUID{dispute.ClientID, dispute.FreelancerID}, event.DisputeUpdated, dispute)
	logger.Log.WithFields(logrus.Fields{
		"dispute_id": dispute.ID,
		"order_id":   dispute.OrderID,
		"status":     dispute.Status,
		"actor":      actor.UserID,
	}).Info("спор обновлён")
	return dispute, nil
}

type ResolveDisputeUseCase struct {
	uow       repository.UnitOfWork
	publisher event.Publisher
}

func NewResolveDisputeUseCase(uow repository.UnitOfWork, publisher event.Publisher) *ResolveDisputeUseCase {
	return &ResolveDisputeUseCase{uow: uow, publisher: publisher}
}

func (uc *ResolveDisputeUseCase) Execute(ctx context.Context, actor valueobject.Identity, id uuid.UUID, resolution string) (*entity.Dispute, error) {
	return moderate(ctx, uc.uow, uc.publisher, actor, id, func(d *entity.Dispute) error {
		return d.Resolve(resolution)
	})
}

type CloseDisputeUseCase struct {
	uow       repository.UnitOfWork
	publisher event.Publisher
}

func NewCloseDisputeUseCase(uow repository.UnitOfWork, publisher event.Publisher) *CloseDisputeUseCase {
	return &CloseDisputeUseCase{uow: uow, publisher: publisher}
}

func (uc *CloseDisputeUseCase) Execute(ctx context.Context, actor valueobject.Identity, id uuid.UUID) (*entity.Dispute, error) {
	return moderate(ctx, uc.uow, uc.publisher, actor, id, func(d *entity.Dispute) error {
		return d.Close()
	})
}

type DeleteDisputeUseCase struct {
	store repository.Store
}

func NewDeleteDisputeUseCase(store repository.Store) *DeleteDisputeUseCase {
	return &DeleteDisputeUseCase{store: store}
}

func (uc *DeleteDisputeUseCase) Execute(ctx context.Context, actor valueobject.Identity, id uuid.UUID) error {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return err
	}
	if err := uc.store.Disputes().Delete(ctx, id); err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{"dispute_id": id, "actor": actor.UserID}).Warn("спор удалён")
	return nil
}
