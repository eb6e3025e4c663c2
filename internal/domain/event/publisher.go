package event

import "github.com/google/uuid"

const (
	ProposalAccepted   = "proposal.accepted"
	ProposalRejected   = "proposal.rejected"
	OrderStatusChanged = "order.status_changed"
	DisputeOpened      = "dispute.opened"
	DisputeUpdated     = "dispute.updated"
	MessageCreated     = "message.created"
)

// Publisher доставляет события об уже зафиксированных изменениях. Доставка не гарантируется.
type Publisher interface {
	Publish(recipients []uuid.UUID, event string, data any)
}

type NopPublisher struct{}

func (NopPublisher) Publish([]uuid.UUID, string, any) {}
