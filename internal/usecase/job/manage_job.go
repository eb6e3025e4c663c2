package job

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

type SetApprovalUseCase struct {
	uow repository.UnitOfWork
}

func NewSetApprovalUseCase(uow repository.UnitOfWork) *SetApprovalUseCase {
	return &SetApprovalUseCase{uow: uow}
}

func (uc *SetApprovalUseCase) Execute(ctx context.Context, actor valueobject.Identity, jobID uuid.UUID, approval string) (*entity.Job, error) {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return nil, err
	}
	value, err := valueobject.NewJobApproval(approval)
	if err != nil {
		return nil, err
	}

	var job *entity.Job
	err = uc.uow.Do(ctx, func(s repository.Store) error {
		var err error
		if job, err = s.Jobs().FindByIDForUpdate(ctx, jobID); err != nil {
			return err
		}
		if err := job.SetApproval(value); err != nil {
			return err
		}
		return s.Jobs().Update(ctx, job)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"job_id": job.ID, "approval": value, "actor": actor.UserID}).Info("модерация вакансии")
	return job, nil
}

type CancelJobUseCase struct {
	uow       repository.UnitOfWork
	publisher event.Publisher
}

func NewCancelJobUseCase(uow repository.UnitOfWork, publisher event.Publisher) *CancelJobUseCase {
	return &CancelJobUseCase{uow: uow, publisher: publisher}
}

// Execute отменяет вакансию. Владелец отменяет только открытую вакансию,
// администратор также вакансию в работе вместе с её незавершённым заказом.
func (uc *CancelJobUseCase) Execute(ctx context.Context, actor valueobject.Identity, jobID uuid.UUID) (*entity.Job, error) {
	var (
		job      *entity.Job
		order    *entity.Order
		rejected []*entity.Proposal
	)

	err := uc.uow.Do(ctx, func(s repository.Store) error {
		var err error
		if job, err = s.Jobs().FindByIDForUpdate(ctx, jobID); err != nil {
			return err
		}
		if !actor.IsAdmin() {
			if !job.IsOwnedBy(actor.UserID) {
				return apperror.ErrJobNotFound
			}
			if job.Status == valueobject.JobStatusInProgress {
				return apperror.InvalidState("вакансию в работе может отменить только администратор")
			}
		}

		wasInProgress := job.Status == valueobject.JobStatusInProgress
		if err := job.Cancel(); err != nil {
			return err
		}

		if wasInProgress {
			if order, err = s.Orders().FindActiveByJobForUpdate(ctx, job.ID); err != nil {
				return err
			}
			if order != nil {
				if err := order.AdminCancel(actor); err != nil {
					return err
				}
				if err := s.Orders().Update(ctx, order); err != nil {
					return err
				}
			}
		}

		pending, err := s.Proposals().FindByJobID(ctx, job.ID)
		if err != nil {
			return err
		}
		if _, err := s.Proposals().RejectPendingByJob(ctx, job.ID, uuid.Nil); err != nil {
			return err
		}
		for _, p := range pending {
			if p.IsPending() {
				rejected = append(rejected, p)
			}
		}

		return s.Jobs().Update(ctx, job)
	})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"job_id": job.ID, "actor": actor.UserID}
	if order != nil {
		fields["order_id"] = order.ID
		uc.publisher.Publish([]uuid.UUID{order.ClientID, order.FreelancerID}, event.OrderStatusChanged, order)
	}
	for _, p := range rejected {
		uc.publisher.Publish([]uuid.UUID{p.FreelancerID}, event.ProposalRejected, map[string]any{
			"proposal_id": p.ID,
			"job_id":      p.JobID,
		})
	}
	logger.Log.WithFields(fields).Info("вакансия отменена")
	return job, nil
}

type DeleteJobUseCase struct {
	uow repository.UnitOfWork
}

func NewDeleteJobUseCase(uow repository.UnitOfWork) *DeleteJobUseCase {
	return &DeleteJobUseCase{uow: uow}
}

// Execute удаляет вакансию со всеми откликами, заказами, спорами и сообщениями.
func (uc *DeleteJobUseCase) Execute(ctx context.Context, actor valueobject.Identity, jobID uuid.UUID) error {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return err
	}
	err := uc.uow.Do(ctx, func(s repository.Store) error {
		if _, err := s.Jobs().FindByIDForUpdate(ctx, jobID); err != nil {
			return err
		}
		return s.Jobs().HardDelete(ctx, jobID)
	})
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{"job_id": jobID, "actor": actor.UserID}).Warn("вакансия удалена безвозвратно")
	return nil
}
