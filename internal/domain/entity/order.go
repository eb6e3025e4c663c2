package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/validation"
)

type Order struct {
	ID              uuid.UUID
	JobID           uuid.UUID
	ProposalID      uuid.UUID
	ClientID        uuid.UUID
	FreelancerID    uuid.UUID
	Amount          valueobject.Money
	Status          valueobject.OrderStatus
	DeliveryMessage *string
	DeliveryFile    *string
	DeliveredAt     *time.Time
	ClientFeedback  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrderFromProposal создаёт заказ по принятому предложению.
func NewOrderFromProposal(job *Job, proposal *Proposal) (*Order, error) {
	if !proposal.IsAccepted() || proposal.JobID != job.ID {
		return nil, apperror.InvalidState("заказ создаётся только по принятому предложению этой вакансии")
	}

	now := time.Now()
	return &Order{
		ID:           uuid.New(),
		JobID:        job.ID,
		ProposalID:   proposal.ID,
		ClientID:     job.ClientID,
		FreelancerID: proposal.FreelancerID,
		Amount:       proposal.Amount,
		Status:       valueobject.OrderStatusInProgress,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (o *Order) IsParticipant(userID uuid.UUID) bool {
	return o.ClientID == userID || o.FreelancerID == userID
}

// CanView: участники заказа и администратор. Остальным заказ не виден.
func (o *Order) CanView(actor valueobject.Identity) bool {
	return actor.IsAdmin() || o.IsParticipant(actor.UserID)
}

func (o *Order) actsAs(actor valueobject.Identity, party valueobject.OrderParty) bool {
	switch party {
	case valueobject.OrderPartyClient:
		return actor.UserID == o.ClientID
	case valueobject.OrderPartyFreelancer:
		return actor.UserID == o.FreelancerID
	case valueobject.OrderPartyAdmin:
		return actor.IsAdmin()
	}
	return false
}

// transition проверяет видимость, сторону и таблицу переходов именно в этом порядке.
func (o *Order) transition(actor valueobject.Identity, action valueobject.OrderAction) (valueobject.OrderStatus, error) {
	party, ok := action.PartyFor()
	if !ok {
		return "", apperror.Validation("неизвестное действие над заказом")
	}
	if !o.CanView(actor) {
		return "", apperror.ErrOrderNotFound
	}
	if !o.actsAs(actor, party) {
		if party == valueobject.OrderPartyFreelancer {
			return "", apperror.ErrNotYourOrder
		}
		return "", apperror.ErrForbidden
	}

	next, _, ok := valueobject.NextOrderStatus(o.Status, action)
	if !ok {
		return "", apperror.InvalidState(fmt.Sprintf("действие %s недопустимо для заказа в статусе %s", action, o.Status))
	}
	return next, nil
}

func (o *Order) apply(next valueobject.OrderStatus) {
	o.Status = next
	o.UpdatedAt = time.Now()
}

// SubmitWork сдаёт работу впервые или повторно после запроса правок.
func (o *Order) SubmitWork(actor valueobject.Identity, message string, fileRef *string) error {
	next, err := o.transition(actor, valueobject.OrderActionSubmitWork)
	if err != nil {
		return err
	}
	msg, err := validation.RequiredText("сообщение к сдаче", message, validation.MaxMessageLength)
	if err != nil {
		return apperror.Validation(err.Error())
	}

	now := time.Now()
	o.DeliveryMessage = &msg
	o.DeliveryFile = fileRef
	o.DeliveredAt = &now
	o.apply(next)
	return nil
}

func (o *Order) ResumeWork(actor valueobject.Identity) error {
	next, err := o.transition(actor, valueobject.OrderActionResumeWork)
	if err != nil {
		return err
	}
	o.apply(next)
	return nil
}

func (o *Order) AcceptDelivery(actor valueobject.Identity) error {
	next, err := o.transition(actor, valueobject.OrderActionAcceptDelivery)
	if err != nil {
		return err
	}
	o.apply(next)
	return nil
}

func (o *Order) RequestChanges(actor valueobject.Identity, feedback string) error {
	next, err := o.transition(actor, valueobject.OrderActionRequestChanges)
	if err != nil {
		return err
	}
	text, err := validation.RequiredText("комментарий к правкам", feedback, validation.MaxFeedbackLength)
	if err != nil {
		return apperror.Validation(err.Error())
	}
	o.ClientFeedback = &text
	o.apply(next)
	return nil
}

func (o *Order) Cancel(actor valueobject.Identity) error {
	next, err := o.transition(actor, valueobject.OrderActionCancel)
	if err != nil {
		return err
	}
	o.apply(next)
	return nil
}

func (o *Order) AdminApprove(actor valueobject.Identity) error {
	next, err := o.transition(actor, valueobject.OrderActionAdminApprove)
	if err != nil {
		return err
	}
	o.apply(next)
	return nil
}

func (o *Order) AdminCancel(actor valueobject.Identity) error {
	next, err := o.transition(actor, valueobject.OrderActionAdminCancel)
	if err != nil {
		return err
	}
	o.apply(next)
	return nil
}

// Apply выполняет действие без дополнительных полей (общий PATCH статуса).
func (o *Order) Apply(actor valueobject.Identity, action valueobject.OrderAction) error {
	switch action {
	case valueobject.OrderActionResumeWork:
		return o.ResumeWork(actor)
	case valueobject.OrderActionAcceptDelivery:
		return o.AcceptDelivery(actor)
	case valueobject.OrderActionCancel:
		return o.Cancel(actor)
	case valueobject.OrderActionAdminApprove:
		return o.AdminApprove(actor)
	case valueobject.OrderActionAdminCancel:
		return o.AdminCancel(actor)
	}
	return apperror.Validation("действие требует дополнительных данных")
}
