package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
)

type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	Update(ctx context.Context, proposal *entity.Proposal) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]*entity.Proposal, error)
	FindByFreelancerID(ctx context.Context, freelancerID uuid.UUID) ([]*entity.Proposal, error)
	// FindByJobAndFreelancer возвращает nil, nil если отклика нет.
	FindByJobAndFreelancer(ctx context.Context, jobID, freelancerID uuid.UUID) (*entity.Proposal, error)
	// FindAcceptedByJob возвращает nil, nil если исполнитель ещё не выбран.
	FindAcceptedByJob(ctx context.Context, jobID uuid.UUID) (*entity.Proposal, error)
	// RejectPendingByJob отклоняет все ожидающие отклики вакансии, кроме exceptID.
	RejectPendingByJob(ctx context.Context, jobID, exceptID uuid.UUID) ([]uuid.UUID, error)
}
