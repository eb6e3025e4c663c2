package proposal

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

type AcceptProposalUseCase struct {
	uow       repository.UnitOfWork
	publisher event.Publisher
}

func NewAcceptProposalUseCase(uow repository.UnitOfWork, publisher event.Publisher) *AcceptProposalUseCase {
	return &AcceptProposalUseCase{uow: uow, publisher: publisher}
}

// lockJobAndProposal блокирует строки в порядке вакансия -> отклик, как и остальные сценарии.
func lockJobAndProposal(ctx context.Context, s repository.Store, proposalID uuid.UUID) (*entity.Job, *entity.Proposal, error) {
	unlocked, err := s.Proposals().FindByID(ctx, proposalID)
	if err != nil {
		return nil, nil, err
	}
	job, err := s.Jobs().FindByIDForUpdate(ctx, unlocked.JobID)
	if err != nil {
		return nil, nil, err
	}
	proposal, err := s.Proposals().FindByIDForUpdate(ctx, proposalID)
	if err != nil {
		return nil, nil, err
	}
	return job, proposal, nil
}

// Execute принимает отклик: в одной транзакции отклик становится accepted,
// остальные ожидающие отклонены, вакансия уходит в работу и создаётся заказ.
func (uc *AcceptProposalUseCase) Execute(ctx context.Context, actor valueobject.Identity, proposalID uuid.UUID) (*entity.Order, error) {
	var (
		order    *entity.Order
		rejected []*entity.Proposal
	)

	err := uc.uow.Do(ctx, func(s repository.Store) error {
		job, proposal, err := lockJobAndProposal(ctx, s, proposalID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !job.IsOwnedBy(actor.UserID) {
			return apperror.ErrForbidden
		}

		if err := proposal.Accept(); err != nil {
			return err
		}
		if err := job.StartWork(); err != nil {
			return err
		}

		siblings, err := s.Proposals().FindByJobID(ctx, job.ID)
		if err != nil {
			return err
		}
		for _, p := range siblings {
			if p.ID != proposal.ID && p.IsPending() {
				rejected = append(rejected, p)
			}
		}
		if _, err := s.Proposals().RejectPendingByJob(ctx, job.ID, proposal.ID); err != nil {
			return err
		}

		if err := s.Proposals().Update(ctx, proposal); err != nil {
			return err
		}
		if err := s.Jobs().Update(ctx, job); err != nil {
			return err
		}

		if order, err = entity.NewOrderFromProposal(job, proposal); err != nil {
			return err
		}
		return s.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish([]uuid.UUID{order.FreelancerID, order.ClientID}, event.ProposalAccepted, order)
	for _, p := range rejected {
		uc.publisher.Publish([]uuid.UUID{p.FreelancerID}, event.ProposalRejected, map[string]any{
			"proposal_id": p.ID,
			"job_id":      p.JobID,
		})
	}

	logger.Log.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"job_id":      order.JobID,
		"proposal_id": order.ProposalID,
		"rejected":    len(rejected),
		"actor":       actor.UserID,
	}).Info("отклик принят, заказ создан")
	return order, nil
}
