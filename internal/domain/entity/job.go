package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/validation"
)

type Job struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Title       string
	Description string
	Budget      valueobject.Money
	Status      valueobject.JobStatus
	Approval    valueobject.JobApproval
	Skills      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type jobFields struct {
	title       string
	description string
	budget      valueobject.Money
	skills      []string
}

func validateJobFields(title, description string, budget float64, skills []string) (jobFields, error) {
	var f jobFields
	var err error

	if f.title, err = validation.RequiredText("название вакансии", title, validation.MaxJobTitleLength); err != nil {
		return f, apperror.Validation(err.Error())
	}
	if f.description, err = validation.RequiredText("описание вакансии", description, validation.MaxJobDescriptionLength); err != nil {
		return f, apperror.Validation(err.Error())
	}
	if budget > validation.MaxBudget {
		return f, apperror.Validation("бюджет превышает допустимый максимум")
	}
	if f.budget, err = valueobject.NewMoney(budget); err != nil {
		return f, err
	}
	if f.skills, err = validation.NormalizeSkills(skills); err != nil {
		return f, apperror.Validation(err.Error())
	}
	return f, nil
}

func NewJob(clientID uuid.UUID, title, description string, budget float64, skills []string) (*Job, error) {
	f, err := validateJobFields(title, description, budget, skills)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Job{
		ID:          uuid.New(),
		ClientID:    clientID,
		Title:       f.title,
		Description: f.description,
		Budget:      f.budget,
		Status:      valueobject.JobStatusOpen,
		Approval:    valueobject.JobApprovalPending,
		Skills:      f.skills,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Edit заменяет поля и набор навыков целиком. Только для открытой вакансии.
func (j *Job) Edit(title, description string, budget float64, skills []string) error {
	if j.Status != valueobject.JobStatusOpen {
		return apperror.InvalidState("редактировать можно только открытую вакансию")
	}
	f, err := validateJobFields(title, description, budget, skills)
	if err != nil {
		return err
	}

	j.Title = f.title
	j.Description = f.description
	j.Budget = f.budget
	j.Skills = f.skills
	j.UpdatedAt = time.Now()
	return nil
}

func (j *Job) SetApproval(approval valueobject.JobApproval) error {
	if approval != valueobject.JobApprovalApproved && approval != valueobject.JobApprovalRejected {
		return apperror.Validation("модерация принимает только approved или rejected")
	}
	j.Approval = approval
	j.UpdatedAt = time.Now()
	return nil
}

func (j *Job) StartWork() error {
	if !j.Status.CanTransitionTo(valueobject.JobStatusInProgress) {
		return apperror.ErrJobNotOpen
	}
	j.Status = valueobject.JobStatusInProgress
	j.UpdatedAt = time.Now()
	return nil
}

func (j *Job) Complete() error {
	if !j.Status.CanTransitionTo(valueobject.JobStatusCompleted) {
		return apperror.InvalidState("невозможно завершить вакансию в текущем статусе")
	}
	j.Status = valueobject.JobStatusCompleted
	j.UpdatedAt = time.Now()
	return nil
}

func (j *Job) Cancel() error {
	if j.Status == valueobject.JobStatusCancelled {
		return apperror.New(apperror.ErrCodeConflict, "вакансия уже отменена")
	}
	if !j.Status.CanTransitionTo(valueobject.JobStatusCancelled) {
		return apperror.InvalidState("невозможно отменить вакансию в текущем статусе")
	}
	j.Status = valueobject.JobStatusCancelled
	j.UpdatedAt = time.Now()
	return nil
}

func (j *Job) IsOwnedBy(userID uuid.UUID) bool {
	return j.ClientID == userID
}

func (j *Job) IsOpen() bool {
	return j.Status == valueobject.JobStatusOpen
}
