package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/validation"
)

type Message struct {
	ID         uuid.UUID
	JobID      uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Body       string
	IsRead     bool
	CreatedAt  time.Time
}

func NewMessage(jobID, senderID, receiverID uuid.UUID, body string) (*Message, error) {
	text, err := validation.RequiredText("сообщение", body, validation.MaxMessageLength)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	return &Message{
		ID:         uuid.New(),
		JobID:      jobID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       text,
		CreatedAt:  time.Now(),
	}, nil
}
