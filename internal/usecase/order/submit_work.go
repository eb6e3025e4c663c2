package order

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

// BlobStore хранит файлы сдачи работы. Ссылка для ядра непрозрачна.
type BlobStore interface {
	Store(ctx context.Context, r io.Reader, suggestedName string) (string, error)
	Delete(ctx context.Context, ref string) error
}

type SubmitWorkInput struct {
	Message string
	// FileRef: уже загруженный файл. Игнорируется, если передан File.
	FileRef  *string
	File     io.Reader
	FileName string
}

type SubmitWorkUseCase struct {
	lifecycle *Lifecycle
	store     repository.Store
	blobs     BlobStore
}

func NewSubmitWorkUseCase(lifecycle *Lifecycle, store repository.Store, blobs BlobStore) *SubmitWorkUseCase {
	return &SubmitWorkUseCase{lifecycle: lifecycle, store: store, blobs: blobs}
}

// Execute сдаёт работу. Файл загружается до транзакции и удаляется, если транзакция не прошла.
func (uc *SubmitWorkUseCase) Execute(ctx context.Context, actor valueobject.Identity, orderID uuid.UUID, input SubmitWorkInput) (*entity.Order, error) {
	current, err := uc.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Проверка на копии, чтобы не загружать файл от того, кому сдача всё равно запрещена.
	dryRun := *current
	if err := dryRun.SubmitWork(actor, input.Message, nil); err != nil {
		return nil, err
	}

	fileRef := input.FileRef
	uploaded := false
	if input.File != nil {
		if uc.blobs == nil {
			return nil, apperror.Validation("загрузка файлов не настроена")
		}
		ref, err := uc.blobs.Store(ctx, input.File, input.FileName)
		if err != nil {
			return nil, err
		}
		fileRef = &ref
		uploaded = true
	}

	order, err := uc.lifecycle.transition(ctx, actor, orderID, func(o *entity.Order) error {
		return o.SubmitWork(actor, input.Message, fileRef)
	})
	if err != nil {
		if uploaded {
			if delErr := uc.blobs.Delete(ctx, *fileRef); delErr != nil {
				logger.Log.WithError(delErr).WithField("ref", *fileRef).Warn("не удалось удалить файл после неудачной сдачи работы")
			}
		}
		return nil, err
	}
	return order, nil
}
