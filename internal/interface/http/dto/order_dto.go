package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
)

// DeliverRequest используется для JSON варианта сдачи работы.
// Multipart вариант читает поля message и file напрямую.
type DeliverRequest struct {
	Message string  `json:"message" form:"message" binding:"required,notblank"`
	FileRef *string `json:"file_ref"`
}

type ReviewRequest struct {
	Action   string `json:"action" binding:"required"`
	Feedback string `json:"feedback"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderResponse struct {
	ID              uuid.UUID  `json:"id"`
	JobID           uuid.UUID  `json:"job_id"`
	JobTitle        string     `json:"job_title,omitempty"`
	ProposalID      uuid.UUID  `json:"proposal_id"`
	ClientID        uuid.UUID  `json:"client_id"`
	FreelancerID    uuid.UUID  `json:"freelancer_id"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	DeliveryMessage *string    `json:"delivery_message"`
	DeliveryFile    *string    `json:"delivery_file"`
	DeliveredAt     *time.Time `json:"delivered_at"`
	ClientFeedback  *string    `json:"client_feedback"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func ToOrderResponse(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		JobID:           o.JobID,
		ProposalID:      o.ProposalID,
		ClientID:        o.ClientID,
		FreelancerID:    o.FreelancerID,
		Amount:          o.Amount.Amount,
		Currency:        o.Amount.Currency,
		Status:          string(o.Status),
		DeliveryMessage: o.DeliveryMessage,
		DeliveryFile:    o.DeliveryFile,
		DeliveredAt:     o.DeliveredAt,
		ClientFeedback:  o.ClientFeedback,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func ToOrderViewResponses(views []*repository.OrderView) []OrderResponse {
	result := make([]OrderResponse, 0, len(views))
	for _, v := range views {
		resp := ToOrderResponse(v.Order)
		resp.JobTitle = v.JobTitle
		result = append(result, resp)
	}
	return result
}
