package dto

import "github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"

// EventPayload переводит данные события в тот же вид, что отдаёт REST API.
// Неизвестные типы возвращаются как есть.
func EventPayload(data any) any {
	switch v := data.(type) {
	case *entity.Order:
		return ToOrderResponse(v)
	case *entity.Proposal:
		return ToProposalResponse(v)
	case *entity.Dispute:
		return ToDisputeResponse(v)
	case *entity.Message:
		return ToMessageResponse(v)
	case *entity.Job:
		return ToJobResponse(v)
	default:
		return data
	}
}
