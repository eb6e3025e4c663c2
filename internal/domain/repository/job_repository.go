package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	Update(ctx context.Context, job *entity.Job) error
	// ReplaceSkills удаляет старые навыки и вставляет новые.
	ReplaceSkills(ctx context.Context, jobID uuid.UUID, skills []string) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	// FindByIDForUpdate блокирует строку до конца транзакции.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Job, error)
	List(ctx context.Context, filter JobFilter) ([]*entity.Job, int, error)
	// HardDelete удаляет вакансию вместе со всеми зависимыми строками.
	HardDelete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int, error)
	CountPendingApproval(ctx context.Context) (int, error)

	ListSkillCounts(ctx context.Context, search string) ([]SkillCount, error)
	// RenameSkill переименовывает навык во всех вакансиях и возвращает число затронутых вакансий.
	// Вызывается внутри транзакции.
	RenameSkill(ctx context.Context, from, to string) (int64, error)
	DeleteSkill(ctx context.Context, skill string) (int64, error)
}

// SkillCount: навык и число вакансий, где он указан.
type SkillCount struct {
	Skill    string
	JobCount int
}

type JobFilter struct {
	Search    string
	Status    string
	Approval  string
	Skill     string
	BudgetMin *float64
	BudgetMax *float64
	// ExcludeRejected скрывает вакансии, отклонённые модерацией.
	ExcludeRejected bool
	Limit           int
	Offset          int
}
