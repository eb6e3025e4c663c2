package dispute_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/event"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/dispute"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/usecasetest"
)

var (
	client     = valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleClient}
	freelancer = valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleFreelancer}
	stranger   = valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleClient}
	admin      = valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleAdmin}
)

func seedOrder(t *testing.T, mem *usecasetest.Mem, status valueobject.OrderStatus) *entity.Order {
	t.Helper()
	j, err := entity.NewJob(client.UserID, "Видеомонтаж", "Смонтировать ролик", 200, nil)
	require.NoError(t, err)
	p, err := entity.NewProposal(j.ID, freelancer.UserID, "Смонтирую", 180, 3)
	require.NoError(t, err)
	require.NoError(t, p.Accept())
	require.NoError(t, j.StartWork())
	o, err := entity.NewOrderFromProposal(j, p)
	require.NoError(t, err)
	o.Status = status
	mem.PutJob(j)
	mem.PutProposal(p)
	mem.PutOrder(o)
	return o
}

func TestOpenDispute(t *testing.T) {
	ctx := context.Background()

	t.Run("participant opens, second open is a conflict", func(t *testing.T) {
		mem := usecasetest.NewMem()
		events := &usecasetest.Recorder{}
		o := seedOrder(t, mem, valueobject.OrderStatusDelivered)
		uc := dispute.NewOpenDisputeUseCase(mem, events)

		d, err := uc.Execute(ctx, freelancer, o.ID, "Заказчик не отвечает")
		require.NoError(t, err)
		assert.Equal(t, valueobject.DisputeStatusOpen, d.Status)
		assert.Equal(t, freelancer.UserID, d.OpenedBy)
		assert.Equal(t, []string{event.DisputeOpened}, events.Names())

		_, err = uc.Execute(ctx, client, o.ID, "Работа не соответствует ТЗ")
		assert.ErrorIs(t, err, apperror.ErrDisputeOpen)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		mem := usecasetest.NewMem()
		o := seedOrder(t, mem, valueobject.OrderStatusInProgress)
		_, err := dispute.NewOpenDisputeUseCase(mem, event.NopPublisher{}).Execute(ctx, stranger, o.ID, "Просто так")
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("cancelled order", func(t *testing.T) {
		mem := usecasetest.NewMem()
		o := seedOrder(t, mem, valueobject.OrderStatusCancelled)
		_, err := dispute.NewOpenDisputeUseCase(mem, event.NopPublisher{}).Execute(ctx, client, o.ID, "Верните деньги")
		assert.True(t, apperror.IsInvalidState(err))
	})

	t.Run("empty reason", func(t *testing.T) {
		mem := usecasetest.NewMem()
		o := seedOrder(t, mem, valueobject.OrderStatusInProgress)
		_, err := dispute.NewOpenDisputeUseCase(mem, event.NopPublisher{}).Execute(ctx, client, o.ID, " ")
		assert.True(t, apperror.IsValidation(err))
	})
}

func openDispute(t *testing.T, mem *usecasetest.Mem) *entity.Dispute {
	t.Helper()
	o := seedOrder(t, mem, valueobject.OrderStatusDelivered)
	d, err := dispute.NewOpenDisputeUseCase(mem, event.NopPublisher{}).Execute(context.Background(), client, o.ID, "Сорваны сроки")
	require.NoError(t, err)
	return d
}

func TestResolveAndClose(t *testing.T) {
	ctx := context.Background()
	mem := usecasetest.NewMem()
	events := &usecasetest.Recorder{}
	d := openDispute(t, mem)

	resolve := dispute.NewResolveDisputeUseCase(mem, events)
	_, err := resolve.Execute(ctx, client, d.ID, "Сам решил")
	assert.True(t, apperror.IsForbidden(err))

	_, err = resolve.Execute(ctx, admin, d.ID, "")
	assert.True(t, apperror.IsValidation(err))

	got, err := resolve.Execute(ctx, admin, d.ID, "Вернуть половину суммы")
	require.NoError(t, err)
	assert.Equal(t, valueobject.DisputeStatusResolved, got.Status)
	require.NotNil(t, got.ResolvedAt)

	_, err = resolve.Execute(ctx, admin, d.ID, "Ещё раз")
	assert.True(t, apperror.IsInvalidState(err))

	closer := dispute.NewCloseDisputeUseCase(mem, events)
	got, err = closer.Execute(ctx, admin, d.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.DisputeStatusClosed, got.Status)

	_, err = closer.Execute(ctx, admin, d.ID)
	assert.True(t, apperror.IsInvalidState(err))
	assert.Equal(t, []string{event.DisputeUpdated, event.DisputeUpdated}, events.Names())
}

func TestCloseOpenDisputeSetsResolvedAt(t *testing.T) {
	mem := usecasetest.NewMem()
	d := openDispute(t, mem)

	got, err := dispute.NewCloseDisputeUseCase(mem, event.NopPublisher{}).Execute(context.Background(), admin, d.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.ResolvedAt)
}

func TestGetListDelete(t *testing.T) {
	ctx := context.Background()
	mem := usecasetest.NewMem()
	d := openDispute(t, mem)

	_, err := dispute.NewGetDisputeUseCase(mem).Execute(ctx, stranger, d.ID)
	assert.ErrorIs(t, err, apperror.ErrDisputeNotFound)
	got, err := dispute.NewGetDisputeUseCase(mem).Execute(ctx, freelancer, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)

	page, err := dispute.NewListDisputesUseCase(mem).Execute(ctx, admin, dispute.ListDisputesInput{Search: "видеомонтаж"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "Видеомонтаж", page.Disputes[0].JobTitle)

	_, err = dispute.NewListDisputesUseCase(mem).Execute(ctx, admin, dispute.ListDisputesInput{Status: "lost"})
	assert.True(t, apperror.IsValidation(err))

	del := dispute.NewDeleteDisputeUseCase(mem)
	assert.True(t, apperror.IsForbidden(del.Execute(ctx, client, d.ID)))
	require.NoError(t, del.Execute(ctx, admin, d.ID))
	assert.ErrorIs(t, del.Execute(ctx, admin, d.ID), apperror.ErrDisputeNotFound)
}
