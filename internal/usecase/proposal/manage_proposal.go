package proposal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/event"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

type RejectProposalUseCase struct {
	uow       repository.UnitOfWork
	publisher event.Publisher
}

func NewRejectProposalUseCase(uow repository.UnitOfWork, publisher event.Publisher) *RejectProposalUseCase {
	return &RejectProposalUseCase{uow: uow, publisher: publisher}
}

func (uc *RejectProposalUseCase) Execute(ctx context.Context, actor valueobject.Identity, proposalID uuid.UUID) (*entity.Proposal, error) {
	var proposal *entity.Proposal
	err := uc.uow.Do(ctx, func(s repository.Store) error {
		job, p, err := lockJobAndProposal(ctx, s, proposalID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !job.IsOwnedBy(actor.UserID) {
			return apperror.ErrForbidden
		}
		if err := p.Reject(); err != nil {
			return err
		}
		proposal = p
		return s.Proposals().Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish([]uuid.UUID{proposal.FreelancerID}, event.ProposalRejected, map[string]any{
		"proposal_id": proposal.ID,
		"job_id":      proposal.JobID,
	})
	return proposal, nil
}

type EditProposalUseCase struct {
	uow repository.UnitOfWork
}

func NewEditProposalUseCase(uow repository.UnitOfWork) *EditProposalUseCase {
	return &EditProposalUseCase{uow: uow}
}

// Execute правит отклик от имени администратора, только пока отклик ожидает решения.
func (uc *EditProposalUseCase) Execute(ctx context.Context, actor valueobject.Identity, proposalID uuid.UUID, input ProposalInput) (*entity.Proposal, error) {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return nil, err
	}
	var proposal *entity.Proposal
	err := uc.uow.Do(ctx, func(s repository.Store) error {
		_, p, err := lockJobAndProposal(ctx, s, proposalID)
		if err != nil {
			return err
		}
		if err := p.Edit(input.CoverLetter, input.Amount, input.EstimatedDays); err != nil {
			return err
		}
		proposal = p
		return s.Proposals().Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

type DeleteProposalUseCase struct {
	uow repository.UnitOfWork
}

func NewDeleteProposalUseCase(uow repository.UnitOfWork) *DeleteProposalUseCase {
	return &DeleteProposalUseCase{uow: uow}
}

func (uc *DeleteProposalUseCase) Execute(ctx context.Context, actor valueobject.Identity, proposalID uuid.UUID) error {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return err
	}
	return uc.uow.Do(ctx, func(s repository.Store) error {
		_, p, err := lockJobAndProposal(ctx, s, proposalID)
		if err != nil {
			return err
		}
		if p.IsAccepted() {
			return apperror.InvalidState("принятый отклик нельзя удалить: от него зависит заказ")
		}
		return s.Proposals().Delete(ctx, p.ID)
	})
}
