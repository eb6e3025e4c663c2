package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/validation"
)

type Dispute struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ClientID     uuid.UUID
	FreelancerID uuid.UUID
	OpenedBy     uuid.UUID
	Reason       string
	Status       valueobject.DisputeStatus
	Resolution   *string
	ResolvedAt   *time.Time
	CreatedAt    time.Time
}

func NewDispute(order *Order, openedBy uuid.UUID, reason string) (*Dispute, error) {
	if !order.IsParticipant(openedBy) {
		return nil, apperror.ErrOrderNotFound
	}
	if order.Status == valueobject.OrderStatusCancelled {
		return nil, apperror.InvalidState("по отменённому заказу нельзя открыть спор")
	}
	text, err := validation.RequiredText("причина спора", reason, validation.MaxReasonLength)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	return &Dispute{
		ID:           uuid.New(),
		OrderID:      order.ID,
		ClientID:     order.ClientID,
		FreelancerID: order.FreelancerID,
		OpenedBy:     openedBy,
		Reason:       text,
		Status:       valueobject.DisputeStatusOpen,
		CreatedAt:    time.Now(),
	}, nil
}

func (d *Dispute) Resolve(resolution string) error {
	if d.Status != valueobject.DisputeStatusOpen {
		return apperror.InvalidState("решить можно только открытый спор")
	}
	text, err := validation.RequiredText("решение", resolution, validation.MaxResolutionLength)
	if err != nil {
		return apperror.Validation(err.Error())
	}

	now := time.Now()
	d.Resolution = &text
	d.ResolvedAt = &now
	d.Status = valueobject.DisputeStatusResolved
	return nil
}

func (d *Dispute) Close() error {
	if d.Status == valueobject.DisputeStatusClosed {
		return apperror.InvalidState("спор уже закрыт")
	}
	if d.ResolvedAt == nil {
		now := time.Now()
		d.ResolvedAt = &now
	}
	d.Status = valueobject.DisputeStatusClosed
	return nil
}

func (d *Dispute) IsParticipant(userID uuid.UUID) bool {
	return d.ClientID == userID || d.FreelancerID == userID
}
