package job

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

type JobPage struct {
	Jobs  []*entity.Job
	Total int
}

type GetJobUseCase struct {
	store repository.Store
}

func NewGetJobUseCase(store repository.Store) *GetJobUseCase {
	return &GetJobUseCase{store: store}
}

// Execute скрывает отклонённые модерацией вакансии от всех, кроме владельца и администратора.
func (uc *GetJobUseCase) Execute(ctx context.Context, actor valueobject.Identity, jobID uuid.UUID) (*entity.Job, error) {
	job, err := uc.store.Jobs().FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Approval == valueobject.JobApprovalRejected && !actor.IsAdmin() && !job.IsOwnedBy(actor.UserID) {
		return nil, apperror.ErrJobNotFound
	}
	return job, nil
}

type ListOpenJobsInput struct {
	Search    string
	Skill     string
	BudgetMin *float64
	BudgetMax *float64
	Limit     int
	Offset    int
}

type ListOpenJobsUseCase struct {
	store repository.Store
}

func NewListOpenJobsUseCase(store repository.Store) *ListOpenJobsUseCase {
	return &ListOpenJobsUseCase{store: store}
}

func (uc *ListOpenJobsUseCase) Execute(ctx context.Context, input ListOpenJobsInput) (*JobPage, error) {
	if input.BudgetMin != nil && input.BudgetMax != nil && *input.BudgetMin > *input.BudgetMax {
		return nil, apperror.Validation("минимальный бюджет больше максимального")
	}
	jobs, total, err := uc.store.Jobs().List(ctx, repository.JobFilter{
		Search:          input.Search,
		Status:          string(valueobject.JobStatusOpen),
		Skill:           input.Skill,
		BudgetMin:       input.BudgetMin,
		BudgetMax:       input.BudgetMax,
		ExcludeRejected: true,
		Limit:           input.Limit,
		Offset:          input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &JobPage{Jobs: jobs, Total: total}, nil
}

type ListMyJobsUseCase struct {
	store repository.Store
}

func NewListMyJobsUseCase(store repository.Store) *ListMyJobsUseCase {
	return &ListMyJobsUseCase{store: store}
}

func (uc *ListMyJobsUseCase) Execute(ctx context.Context, actor valueobject.Identity) ([]*entity.Job, error) {
	if err := actor.Require(valueobject.RoleClient, valueobject.RoleAdmin); err != nil {
		return nil, err
	}
	return uc.store.Jobs().FindByClientID(ctx, actor.UserID)
}

type AdminListJobsInput struct {
	Search   string
	Status   string
	Approval string
	Limit    int
	Offset   int
}

type AdminListJobsUseCase struct {
	store repository.Store
}

func NewAdminListJobsUseCase(store repository.Store) *AdminListJobsUseCase {
	return &AdminListJobsUseCase{store: store}
}

func (uc *AdminListJobsUseCase) Execute(ctx context.Context, actor valueobject.Identity, input AdminListJobsInput) (*JobPage, error) {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Status != "" {
		if _, err := valueobject.NewJobStatus(input.Status); err != nil {
			return nil, err
		}
	}
	if input.Approval != "" {
		if _, err := valueobject.NewJobApproval(input.Approval); err != nil {
			return nil, err
		}
	}
	jobs, total, err := uc.store.Jobs().List(ctx, repository.JobFilter{
		Search:   input.Search,
		Status:   input.Status,
		Approval: input.Approval,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &JobPage{Jobs: jobs, Total: total}, nil
}
