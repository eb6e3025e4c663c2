package message

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/event"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

// counterpart возвращает второго участника переписки по вакансии.
// Писать и читать могут только заказчик и принятый исполнитель.
func counterpart(ctx context.Context, s repository.Store, actor valueobject.Identity, jobID uuid.UUID) (uuid.UUID, error) {
	job, err := s.Jobs().FindByID(ctx, jobID)
	if err != nil {
		return uuid.Nil, err
	}
	accepted, err := s.Proposals().FindAcceptedByJob(ctx, jobID)
	if err != nil {
		return uuid.Nil, err
	}

	switch {
	case accepted != nil && actor.UserID == accepted.FreelancerID:
		return job.ClientID, nil
	case job.IsOwnedBy(actor.UserID):
		if accepted == nil {
			return uuid.Nil, apperror.InvalidState("у вакансии ещё нет исполнителя")
		}
		return accepted.FreelancerID, nil
	}
	return uuid.Nil, apperror.ErrForbidden
}

type SendMessageUseCase struct {
	store     repository.Store
	publisher event.Publisher
}

func NewSendMessageUseCase(store repository.Store, publisher event.Publisher) *SendMessageUseCase {
	return &SendMessageUseCase{store: store, publisher: publisher}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, actor valueobject.Identity, jobID uuid.UUID, body string) (*entity.Message, error) {
	receiverID, err := counterpart(ctx, uc.store, actor, jobID)
	if err != nil {
		return nil, err
	}
	msg, err := entity.NewMessage(jobID, actor.UserID, receiverID, body)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Messages().Create(ctx, msg); err != nil {
		return nil, err
	}

	uc.publisher.Publish([]uuid.UUID{receiverID}, event.MessageCreated, msg)
	return msg, nil
}

type ListMessagesUseCase struct {
	uow repository.UnitOfWork
}

func NewListMessagesUseCase(uow repository.UnitOfWork) *ListMessagesUseCase {
	return &ListMessagesUseCase{uow: uow}
}

// Execute возвращает переписку от старых к новым и помечает входящие прочитанными.
func (uc *ListMessagesUseCase) Execute(ctx context.Context, actor valueobject.Identity, jobID uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := uc.uow.Do(ctx, func(s repository.Store) error {
		if _, err := counterpart(ctx, s, actor, jobID); err != nil {
			return err
		}
		list, err := s.Messages().ListByJob(ctx, jobID)
		if err != nil {
			return err
		}
		read, err := s.Messages().MarkRead(ctx, jobID, actor.UserID)
		if err != nil {
			return err
		}
		if read > 0 {
			logger.Log.WithField("job_id", jobID).Debugf("прочитано сообщений: %d", read)
		}
		messages = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}
