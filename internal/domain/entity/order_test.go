package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

type orderFixture struct {
	order      *Order
	client     valueobject.Identity
	freelancer valueobject.Identity
	admin      valueobject.Identity
	stranger   valueobject.Identity
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	client := valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleClient}
	freelancer := valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleFreelancer}

	job, err := NewJob(client.UserID, "Статья", "Нужна статья про Go", 500, []string{"writing"})
	require.NoError(t, err)
	proposal, err := NewProposal(job.ID, freelancer.UserID, "Сделаю за пять дней", 400, 5)
	require.NoError(t, err)
	require.NoError(t, proposal.Accept())

	order, err := NewOrderFromProposal(job, proposal)
	require.NoError(t, err)

	return orderFixture{
		order:      order,
		client:     client,
		freelancer: freelancer,
		admin:      valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleAdmin},
		stranger:   valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleFreelancer},
	}
}

func TestNewOrderFromProposal_RequiresAccepted(t *testing.T) {
	job, _ := NewJob(uuid.New(), "t", "d", 1, nil)
	proposal, _ := NewProposal(job.ID, uuid.New(), "letter", 1, 1)

	_, err := NewOrderFromProposal(job, proposal)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestOrder_HappyPath(t *testing.T) {
	f := newOrderFixture(t)
	assert.Equal(t, valueobject.OrderStatusInProgress, f.order.Status)
	assert.Equal(t, 400.0, f.order.Amount.Amount)

	require.NoError(t, f.order.SubmitWork(f.freelancer, "Готово", nil))
	assert.Equal(t, valueobject.OrderStatusDelivered, f.order.Status)
	require.NotNil(t, f.order.DeliveredAt)
	assert.Equal(t, "Готово", *f.order.DeliveryMessage)

	require.NoError(t, f.order.AcceptDelivery(f.client))
	assert.Equal(t, valueobject.OrderStatusCompleted, f.order.Status)
}

func TestOrder_SubmitWork_WrongStateKeepsDeliveryFields(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.order.SubmitWork(f.freelancer, "v1", nil))
	deliveredAt := f.order.DeliveredAt

	ref := "blob/v2"
	err := f.order.SubmitWork(f.freelancer, "v2", &ref)
	assert.True(t, apperror.IsInvalidState(err))
	assert.Equal(t, "v1", *f.order.DeliveryMessage)
	assert.Nil(t, f.order.DeliveryFile)
	assert.Equal(t, deliveredAt, f.order.DeliveredAt)
}

func TestOrder_SubmitWork_Authorization(t *testing.T) {
	f := newOrderFixture(t)

	err := f.order.SubmitWork(f.client, "msg", nil)
	assert.ErrorIs(t, err, apperror.ErrNotYourOrder)

	err = f.order.SubmitWork(f.stranger, "msg", nil)
	assert.True(t, apperror.IsNotFound(err))

	err = f.order.SubmitWork(f.freelancer, "   ", nil)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, valueobject.OrderStatusInProgress, f.order.Status)
}

func TestOrder_FreelancerCannotCancel(t *testing.T) {
	for _, status := range []valueobject.OrderStatus{
		valueobject.OrderStatusInProgress, valueobject.OrderStatusDelivered,
		valueobject.OrderStatusRevisionRequested, valueobject.OrderStatusCompleted,
	} {
		f := newOrderFixture(t)
		f.order.Status = status
		err := f.order.Cancel(f.freelancer)
		assert.True(t, apperror.IsForbidden(err), status)
	}
}

func TestOrder_ClientCancelOnlyFromInProgress(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.order.Cancel(f.client))
	assert.Equal(t, valueobject.OrderStatusCancelled, f.order.Status)

	f = newOrderFixture(t)
	require.NoError(t, f.order.SubmitWork(f.freelancer, "done", nil))
	assert.True(t, apperror.IsInvalidState(f.order.Cancel(f.client)))
}

func TestOrder_RevisionCycle(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.order.SubmitWork(f.freelancer, "v1", nil))

	assert.True(t, apperror.IsValidation(f.order.RequestChanges(f.client, "")))
	assert.True(t, apperror.IsForbidden(f.order.RequestChanges(f.freelancer, "fix")))

	require.NoError(t, f.order.RequestChanges(f.client, "Поправьте заголовок"))
	assert.Equal(t, valueobject.OrderStatusRevisionRequested, f.order.Status)
	assert.Equal(t, "Поправьте заголовок", *f.order.ClientFeedback)

	// повторная сдача прямо из revision_requested
	ref := "deliveries/v2.pdf"
	require.NoError(t, f.order.SubmitWork(f.freelancer, "v2", &ref))
	assert.Equal(t, valueobject.OrderStatusDelivered, f.order.Status)
	assert.Equal(t, ref, *f.order.DeliveryFile)

	require.NoError(t, f.order.RequestChanges(f.client, "ещё раз"))
	require.NoError(t, f.order.ResumeWork(f.freelancer))
	assert.Equal(t, valueobject.OrderStatusInProgress, f.order.Status)
}

func TestOrder_AcceptDelivery_RequiresDeliveredAndClient(t *testing.T) {
	f := newOrderFixture(t)
	assert.True(t, apperror.IsInvalidState(f.order.AcceptDelivery(f.client)))

	require.NoError(t, f.order.SubmitWork(f.freelancer, "v1", nil))
	assert.True(t, apperror.IsForbidden(f.order.AcceptDelivery(f.freelancer)))
	assert.True(t, apperror.IsForbidden(f.order.AcceptDelivery(f.admin)))
}

func TestOrder_AdminOverrides(t *testing.T) {
	f := newOrderFixture(t)
	assert.True(t, apperror.IsForbidden(f.order.AdminCancel(f.client)))
	assert.True(t, apperror.IsInvalidState(f.order.AdminApprove(f.admin)))

	require.NoError(t, f.order.SubmitWork(f.freelancer, "v1", nil))
	require.NoError(t, f.order.AdminApprove(f.admin))
	assert.Equal(t, valueobject.OrderStatusCompleted, f.order.Status)

	assert.True(t, apperror.IsInvalidState(f.order.AdminCancel(f.admin)))
}

func TestOrder_Apply(t *testing.T) {
	f := newOrderFixture(t)
	assert.True(t, apperror.IsValidation(f.order.Apply(f.freelancer, valueobject.OrderActionSubmitWork)))
	require.NoError(t, f.order.Apply(f.admin, valueobject.OrderActionAdminCancel))
	assert.True(t, f.order.Status.IsTerminal())
}
