package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

const (
	ReviewAccept         = "accept"
	ReviewRequestChanges = "request_changes"
)

type ReviewDeliveryUseCase struct {
	lifecycle *Lifecycle
}

func NewReviewDeliveryUseCase(lifecycle *Lifecycle) *ReviewDeliveryUseCase {
	return &ReviewDeliveryUseCase{lifecycle: lifecycle}
}

func (uc *ReviewDeliveryUseCase) Execute(ctx context.Context, actor valueobject.Identity, orderID uuid.UUID, action, feedback string) (*entity.Order, error) {
	switch action {
	case ReviewAccept:
		return uc.lifecycle.transition(ctx, actor, orderID, func(o *entity.Order) error {
			return o.AcceptDelivery(actor)
		})
	case ReviewRequestChanges:
		return uc.lifecycle.transition(ctx, actor, orderID, func(o *entity.Order) error {
			return o.RequestChanges(actor, feedback)
		})
	}
	return nil, apperror.Validation("action должен быть accept или request_changes")
}

type UpdateStatusUseCase struct {
	lifecycle *Lifecycle
}

func NewUpdateStatusUseCase(lifecycle *Lifecycle) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{lifecycle: lifecycle}
}

// Execute сводит запрошенный статус к действию таблицы переходов.
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, actor valueobject.Identity, orderID uuid.UUID, status string) (*entity.Order, error) {
	target, err := valueobject.NewOrderStatus(status)
	if err != nil {
		return nil, err
	}
	action, err := valueobject.ActionForStatusUpdate(target)
	if err != nil {
		return nil, err
	}
	return uc.lifecycle.transition(ctx, actor, orderID, func(o *entity.Order) error {
		return o.Apply(actor, action)
	})
}

type AdminApproveDeliveryUseCase struct {
	lifecycle *Lifecycle
}

func NewAdminApproveDeliveryUseCase(lifecycle *Lifecycle) *AdminApproveDeliveryUseCase {
	return &AdminApproveDeliveryUseCase{lifecycle: lifecycle}
}

func (uc *AdminApproveDeliveryUseCase) Execute(ctx context.Context, actor valueobject.Identity, orderID uuid.UUID) (*entity.Order, error) {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return nil, err
	}
	return uc.lifecycle.transition(ctx, actor, orderID, func(o *entity.Order) error {
		return o.AdminApprove(actor)
	})
}

type AdminCancelUseCase struct {
	lifecycle *Lifecycle
}

func NewAdminCancelUseCase(lifecycle *Lifecycle) *AdminCancelUseCase {
	return &AdminCancelUseCase{lifecycle: lifecycle}
}

func (uc *AdminCancelUseCase) Execute(ctx context.Context, actor valueobject.Identity, orderID uuid.UUID) (*entity.Order, error) {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return nil, err
	}
	return uc.lifecycle.transition(ctx, actor, orderID, func(o *entity.Order) error {
		return o.AdminCancel(actor)
	})
}
