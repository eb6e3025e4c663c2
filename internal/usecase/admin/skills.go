package admin

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/validation"
)

const skillsCachePrefix = "admin:skills:"

type ListSkillsUseCase struct {
	store repository.Store
	cache Cache
	ttl   time.Duration
}

func NewListSkillsUseCase(store repository.Store) *ListSkillsUseCase {
	return &ListSkillsUseCase{store: store}
}

func (uc *ListSkillsUseCase) WithCache(cache Cache, ttl time.Duration) *ListSkillsUseCase {
	uc.cache = cache
	uc.ttl = ttl
	return uc
}

// Execute возвращает навыки с числом вакансий, отсортированные по имени.
func (uc *ListSkillsUseCase) Execute(ctx context.Context, actor valueobject.Identity, search string) ([]repository.SkillCount, error) {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return nil, err
	}
	search = strings.TrimSpace(search)
	if uc.cache == nil || uc.ttl <= 0 {
		return uc.store.Jobs().ListSkillCounts(ctx, search)
	}

	v, err := uc.cache.GetOrSet(ctx, skillsCachePrefix+strings.ToLower(search), uc.ttl, func(ctx context.Context) (any, error) {
		return uc.store.Jobs().ListSkillCounts(ctx, search)
	})
	if err != nil {
		return nil, err
	}
	return v.([]repository.SkillCount), nil
}

type RenameSkillUseCase struct {
	uow   repository.UnitOfWork
	cache Cache
}

func NewRenameSkillUseCase(uow repository.UnitOfWork) *RenameSkillUseCase {
	return &RenameSkillUseCase{uow: uow}
}

// WithCache сбрасывает закэшированные списки навыков после изменений.
func (uc *RenameSkillUseCase) WithCache(cache Cache) *RenameSkillUseCase {
	uc.cache = cache
	return uc
}

// Execute переименовывает навык во всех вакансиях. Возвращает число затронутых вакансий.
func (uc *RenameSkillUseCase) Execute(ctx context.Context, actor valueobject.Identity, from, to string) (int64, error) {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return 0, err
	}
	from = strings.TrimSpace(from)
	if from == "" {
		return 0, apperror.Validation("навык не указан")
	}
	to, err := validation.RequiredText("новое название навыка", to, validation.MaxSkillLength)
	if err != nil {
		return 0, apperror.Validation(err.Error())
	}
	if to == from {
		return 0, apperror.Validation("новое название совпадает с текущим")
	}

	var n int64
	err = uc.uow.Do(ctx, func(s repository.Store) error {
		var err error
		if n, err = s.Jobs().RenameSkill(ctx, from, to); err != nil {
			return err
		}
		if n == 0 {
			return apperror.ErrSkillNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	invalidateSkills(uc.cache)
	logger.Log.WithFields(logrus.Fields{"from": from, "to": to, "jobs": n, "actor": actor.UserID}).Info("навык переименован")
	return n, nil
}

type DeleteSkillUseCase struct {
	uow   repository.UnitOfWork
	cache Cache
}

func NewDeleteSkillUseCase(uow repository.UnitOfWork) *DeleteSkillUseCase {
	return &DeleteSkillUseCase{uow: uow}
}

func (uc *DeleteSkillUseCase) WithCache(cache Cache) *DeleteSkillUseCase {
	uc.cache = cache
	return uc
}

// Execute убирает навык у всех вакансий.
func (uc *DeleteSkillUseCase) Execute(ctx context.Context, actor valueobject.Identity, skill string) (int64, error) {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return 0, err
	}
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return 0, apperror.Validation("навык не указан")
	}

	var n int64
	err := uc.uow.Do(ctx, func(s repository.Store) error {
		var err error
		if n, err = s.Jobs().DeleteSkill(ctx, skill); err != nil {
			return err
		}
		if n == 0 {
			return apperror.ErrSkillNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	invalidateSkills(uc.cache)
	logger.Log.WithFields(logrus.Fields{"skill": skill, "jobs": n, "actor": actor.UserID}).Info("навык удалён")
	return n, nil
}

func invalidateSkills(cache Cache) {
	if cache != nil {
		cache.InvalidateByPrefix(skillsCachePrefix)
	}
}
