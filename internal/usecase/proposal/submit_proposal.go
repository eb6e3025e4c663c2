package proposal

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

type ProposalInput struct {
	CoverLetter   string
	Amount        float64
	EstimatedDays int
}

type SubmitProposalUseCase struct {
	uow repository.UnitOfWork
}

func NewSubmitProposalUseCase(uow repository.UnitOfWork) *SubmitProposalUseCase {
	return &SubmitProposalUseCase{uow: uow}
}

// Execute блокирует вакансию, поэтому отклик не может пройти параллельно с принятием другого.
func (uc *SubmitProposalUseCase) Execute(ctx context.Context, actor valueobject.Identity, jobID uuid.UUID, input ProposalInput) (*entity.Proposal, error) {
	if err := actor.Require(valueobject.RoleFreelancer); err != nil {
		return nil, err
	}

	proposal, err := entity.NewProposal(jobID, actor.UserID, input.CoverLetter, input.Amount, input.EstimatedDays)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Do(ctx, func(s repository.Store) error {
		job, err := s.Jobs().FindByIDForUpdate(ctx, jobID)
		if err != nil {
			return err
		}
		if job.IsOwnedBy(actor.UserID) {
			return apperror.New(apperror.ErrCodeForbidden, "нельзя откликнуться на собственную вакансию")
		}
		if !job.IsOpen() || job.Approval == valueobject.JobApprovalRejected {
			return apperror.ErrJobNotOpen
		}

		existing, err := s.Proposals().FindByJobAndFreelancer(ctx, jobID, actor.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.ErrDuplicateProposal
		}
		return s.Proposals().Create(ctx, proposal)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"job_id": jobID, "proposal_id": proposal.ID, "actor": actor.UserID}).Info("отклик отправлен")
	return proposal, nil
}
