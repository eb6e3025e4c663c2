package valueobject

import "github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"

type OrderStatus string

const (
	OrderStatusInProgress        OrderStatus = "in_progress"
	OrderStatusDelivered         OrderStatus = "delivered"
	OrderStatusRevisionRequested OrderStatus = "revision_requested"
	OrderStatusCompleted         OrderStatus = "completed"
	OrderStatusCancelled         OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusInProgress, OrderStatusDelivered, OrderStatusRevisionRequested,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal сообщает, что из статуса нет переходов.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func NewOrderStatus(status string) (OrderStatus, error) {
	s := OrderStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("некорректный статус заказа")
	}
	return s, nil
}

type OrderAction string

const (
	OrderActionSubmitWork     OrderAction = "submit_work"
	OrderActionResumeWork     OrderAction = "resume_work"
	OrderActionAcceptDelivery OrderAction = "accept_delivery"
	OrderActionRequestChanges OrderAction = "request_changes"
	OrderActionCancel         OrderAction = "cancel"
	OrderActionAdminApprove   OrderAction = "admin_approve"
	OrderActionAdminCancel    OrderAction = "admin_cancel"
)

// OrderParty: сторона, которой разрешён переход.
type OrderParty string

const (
	OrderPartyClient     OrderParty = "client"
	OrderPartyFreelancer OrderParty = "freelancer"
	OrderPartyAdmin      OrderParty = "admin"
)

type orderEdgeKey struct {
	from   OrderStatus
	action OrderAction
}

type orderEdge struct {
	to    OrderStatus
	party OrderParty
}

// Единственная таблица переходов заказа. Все пути изменения статуса идут через неё.
var orderTransitions = map[orderEdgeKey]orderEdge{
	{OrderStatusInProgress, OrderActionSubmitWork}:         {OrderStatusDelivered, OrderPartyFreelancer},
	{OrderStatusRevisionRequested, OrderActionSubmitWork}:  {OrderStatusDelivered, OrderPartyFreelancer},
	{OrderStatusRevisionRequested, OrderActionResumeWork}:  {OrderStatusInProgress, OrderPartyFreelancer},
	{OrderStatusDelivered, OrderActionAcceptDelivery}:      {OrderStatusCompleted, OrderPartyClient},
	{OrderStatusDelivered, OrderActionRequestChanges}:      {OrderStatusRevisionRequested, OrderPartyClient},
	{OrderStatusInProgress, OrderActionCancel}:             {OrderStatusCancelled, OrderPartyClient},
	{OrderStatusDelivered, OrderActionAdminApprove}:        {OrderStatusCompleted, OrderPartyAdmin},
	{OrderStatusInProgress, OrderActionAdminCancel}:        {OrderStatusCancelled, OrderPartyAdmin},
	{OrderStatusDelivered, OrderActionAdminCancel}:         {OrderStatusCancelled, OrderPartyAdmin},
	{OrderStatusRevisionRequested, OrderActionAdminCancel}: {OrderStatusCancelled, OrderPartyAdmin},
}

// PartyFor возвращает сторону, которой принадлежит действие, независимо от статуса.
func (a OrderAction) PartyFor() (OrderParty, bool) {
	for key, edge := range orderTransitions {
		if key.action == a {
			return edge.party, true
		}
	}
	return "", false
}

// NextOrderStatus ищет переход (from, action).
func NextOrderStatus(from OrderStatus, action OrderAction) (OrderStatus, OrderParty, bool) {
	edge, ok := orderTransitions[orderEdgeKey{from: from, action: action}]
	if !ok {
		return "", "", false
	}
	return edge.to, edge.party, true
}

// ActionForStatusUpdate сводит общий PATCH статуса к действию таблицы переходов.
func ActionForStatusUpdate(target OrderStatus) (OrderAction, error) {
	switch target {
	case OrderStatusCancelled:
		return OrderActionCancel, nil
	case OrderStatusCompleted:
		return OrderActionAcceptDelivery, nil
	case OrderStatusInProgress:
		return OrderActionResumeWork, nil
	}
	return "", apperror.Validation("статус можно сменить только на in_progress, completed или cancelled")
}
