package dispute

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

type DisputePage struct {
	Disputes []*repository.DisputeView
	Total    int
}

type GetDisputeUseCase struct {
	store repository.Store
}

func NewGetDisputeUseCase(store repository.Store) *GetDisputeUseCase {
	return &GetDisputeUseCase{store: store}
}

func (uc *GetDisputeUseCase) Execute(ctx context.Context, actor valueobject.Identity, id uuid.UUID) (*entity.Dispute, error) {
	d, err := uc.store.Disputes().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !d.IsParticipant(actor.UserID) {
		return nil, apperror.ErrDisputeNotFound
	}
	return d, nil
}

type ListDisputesInput struct {
	Status string
	Search string
	Limit  int
	Offset int
}

type ListDisputesUseCase struct {
	store repository.Store
}

func NewListDisputesUseCase(store repository.Store) *ListDisputesUseCase {
	return &ListDisputesUseCase{store: store}
}

func (uc *ListDisputesUseCase) Execute(ctx context.Context, actor valueobject.Identity, input ListDisputesInput) (*DisputePage, error) {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Status != "" {
		if _, err := valueobject.NewDisputeStatus(input.Status); err != nil {
			return nil, err
		}
	}
	disputes, total, err := uc.store.Disputes().List(ctx, repository.DisputeFilter{
		Status: input.Status,
		Search: input.Search,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &DisputePage{Disputes: disputes, Total: total}, nil
}
