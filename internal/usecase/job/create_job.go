package job

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

type JobInput struct {
	Title       string
	Description string
	Budget      float64
	Skills      []string
}

type CreateJobUseCase struct {
	uow repository.UnitOfWork
}

func NewCreateJobUseCase(uow repository.UnitOfWork) *CreateJobUseCase {
	return &CreateJobUseCase{uow: uow}
}

// Execute создаёт вакансию со статусом open и модерацией pending вместе с навыками.
func (uc *CreateJobUseCase) Execute(ctx context.Context, actor valueobject.Identity, input JobInput) (*entity.Job, error) {
	if err := actor.Require(valueobject.RoleClient, valueobject.RoleAdmin); err != nil {
		return nil, err
	}

	job, err := entity.NewJob(actor.UserID, input.Title, input.Description, input.Budget, input.Skills)
	if err != nil {
		return nil, err
	}

	if err := uc.uow.Do(ctx, func(s repository.Store) error {
		return s.Jobs().Create(ctx, job)
	}); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"job_id": job.ID, "actor": actor.UserID}).Info("вакансия создана")
	return job, nil
}

type EditJobUseCase struct {
	uow repository.UnitOfWork
}

func NewEditJobUseCase(uow repository.UnitOfWork) *EditJobUseCase {
	return &EditJobUseCase{uow: uow}
}

// Execute: владелец или администратор. Чужая вакансия неотличима от несуществующей.
func (uc *EditJobUseCase) Execute(ctx context.Context, actor valueobject.Identity, jobID uuid.UUID, input JobInput) (*entity.Job, error) {
	var job *entity.Job
	err := uc.uow.Do(ctx, func(s repository.Store) error {
		var err error
		job, err = s.Jobs().FindByIDForUpdate(ctx, jobID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !job.IsOwnedBy(actor.UserID) {
			return apperror.ErrJobNotFound
		}
		if err := job.Edit(input.Title, input.Description, input.Budget, input.Skills); err != nil {
			return err
		}
		if err := s.Jobs().Update(ctx, job); err != nil {
			return err
		}
		return s.Jobs().ReplaceSkills(ctx, job.ID, job.Skills)
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}
