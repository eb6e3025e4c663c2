package proposal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

type ListJobProposalsUseCase struct {
	store repository.Store
}

func NewListJobProposalsUseCase(store repository.Store) *ListJobProposalsUseCase {
	return &ListJobProposalsUseCase{store: store}
}

// Execute: отклики видит только заказчик вакансии и администратор.
func (uc *ListJobProposalsUseCase) Execute(ctx context.Context, actor valueobject.Identity, jobID uuid.UUID) ([]*entity.Proposal, error) {
	job, err := uc.store.Jobs().FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !job.IsOwnedBy(actor.UserID) {
		return nil, apperror.ErrForbidden
	}
	return uc.store.Proposals().FindByJobID(ctx, jobID)
}

type ListMyProposalsUseCase struct {
	store repository.Store
}

func NewListMyProposalsUseCase(store repository.Store) *ListMyProposalsUseCase {
	return &ListMyProposalsUseCase{store: store}
}

func (uc *ListMyProposalsUseCase) Execute(ctx context.Context, actor valueobject.Identity) ([]*entity.Proposal, error) {
	if err := actor.Require(valueobject.RoleFreelancer); err != nil {
		return nil, err
	}
	return uc.store.Proposals().FindByFreelancerID(ctx, actor.UserID)
}
