package job_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/event"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/job"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/usecasetest"
)

var (
	client     = valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleClient}
	freelancer = valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleFreelancer}
	admin      = valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleAdmin}
)

var validInput = job.JobInput{
	Title:       "Парсер цен",
	Description: "Собрать цены с трёх сайтов",
	Budget:      150,
	Skills:      []string{"python", " scraping "},
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("client creates open pending job", func(t *testing.T) {
		mem := usecasetest.NewMem()
		got, err := job.NewCreateJobUseCase(mem).Execute(ctx, client, validInput)
		require.NoError(t, err)
		assert.Equal(t, valueobject.JobStatusOpen, got.Status)
		assert.Equal(t, valueobject.JobApprovalPending, got.Approval)

		stored, ok := mem.Job(got.ID)
		require.True(t, ok)
		assert.Equal(t, []string{"python", "scraping"}, stored.Skills)
	})

	t.Run("freelancer is forbidden", func(t *testing.T) {
		_, err := job.NewCreateJobUseCase(usecasetest.NewMem()).Execute(ctx, freelancer, validInput)
		assert.True(t, apperror.IsForbidden(err))
	})

	t.Run("blank title", func(t *testing.T) {
		in := validInput
		in.Title = "   "
		_, err := job.NewCreateJobUseCase(usecasetest.NewMem()).Execute(ctx, client, in)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("negative budget", func(t *testing.T) {
		in := validInput
		in.Budget = -1
		_, err := job.NewCreateJobUseCase(usecasetest.NewMem()).Execute(ctx, client, in)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestEditJob(t *testing.T) {
	ctx := context.Background()
	mem := usecasetest.NewMem()
	created, err := job.NewCreateJobUseCase(mem).Execute(ctx, client, validInput)
	require.NoError(t, err)

	edit := job.NewEditJobUseCase(mem)
	in := validInput
	in.Skills = []string{"go"}
	got, err := edit.Execute(ctx, client, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, got.Skills)
	stored, _ := mem.Job(created.ID)
	assert.Equal(t, []string{"go"}, stored.Skills)

	other := valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleClient}
	_, err = edit.Execute(ctx, other, created.ID, in)
	assert.ErrorIs(t, err, apperror.ErrJobNotFound)

	mem.Fail("jobs.replace_skills", errors.New("timeout"))
	in.Title = "Новое название"
	_, err = edit.Execute(ctx, client, created.ID, in)
	require.Error(t, err)
	stored, _ = mem.Job(created.ID)
	assert.Equal(t, validInput.Title, stored.Title)
}

func TestGetJob_HidesRejectedFromOthers(t *testing.T) {
	ctx := context.Background()
	mem := usecasetest.NewMem()
	j, err := entity.NewJob(client.UserID, "Скрытая", "Отклонена модерацией", 10, nil)
	require.NoError(t, err)
	require.NoError(t, j.SetApproval(valueobject.JobApprovalRejected))
	mem.PutJob(j)

	get := job.NewGetJobUseCase(mem)
	_, err = get.Execute(ctx, freelancer, j.ID)
	assert.ErrorIs(t, err, apperror.ErrJobNotFound)

	_, err = get.Execute(ctx, client, j.ID)
	assert.NoError(t, err)
	_, err = get.Execute(ctx, admin, j.ID)
	assert.NoError(t, err)
}

func TestListOpenJobs(t *testing.T) {
	ctx := context.Background()
	mem := usecasetest.NewMem()
	create := job.NewCreateJobUseCase(mem)
	_, err := create.Execute(ctx, client, validInput)
	require.NoError(t, err)
	rejected, err := create.Execute(ctx, client, job.JobInput{Title: "Спам", Description: "Спам", Budget: 1})
	require.NoError(t, err)
	_, err = job.NewSetApprovalUseCase(mem).Execute(ctx, admin, rejected.ID, "rejected")
	require.NoError(t, err)

	page, err := job.NewListOpenJobsUseCase(mem).Execute(ctx, job.ListOpenJobsInput{Skill: "python"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	page, err = job.NewListOpenJobsUseCase(mem).Execute(ctx, job.ListOpenJobsInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	lo, hi := 100.0, 10.0
	_, err = job.NewListOpenJobsUseCase(mem).Execute(ctx, job.ListOpenJobsInput{BudgetMin: &lo, BudgetMax: &hi})
	assert.True(t, apperror.IsValidation(err))

	all, err := job.NewAdminListJobsUseCase(mem).Execute(ctx, admin, job.AdminListJobsInput{Approval: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, 1, all.Total)

	_, err = job.NewAdminListJobsUseCase(mem).Execute(ctx, client, job.AdminListJobsInput{})
	assert.True(t, apperror.IsForbidden(err))

	mine, err := job.NewListMyJobsUseCase(mem).Execute(ctx, client)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestSetApproval(t *testing.T) {
	ctx := context.Background()
	mem := usecasetest.NewMem()
	created, err := job.NewCreateJobUseCase(mem).Execute(ctx, client, validInput)
	require.NoError(t, err)

	uc := job.NewSetApprovalUseCase(mem)
	_, err = uc.Execute(ctx, client, created.ID, "approved")
	assert.True(t, apperror.IsForbidden(err))

	_, err = uc.Execute(ctx, admin, created.ID, "maybe")
	assert.True(t, apperror.IsValidation(err))

	got, err := uc.Execute(ctx, admin, created.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, valueobject.JobApprovalApproved, got.Approval)
}

// seedInProgress: вакансия в работе с принятым откликом, ожидающим откликом и живым заказом.
func seedInProgress(t *testing.T, mem *usecasetest.Mem) (*entity.Job, *entity.Order, *entity.Proposal) {
	t.Helper()
	j, err := entity.NewJob(client.UserID, "Сайт", "Сайт-визитка", 400, nil)
	require.NoError(t, err)
	accepted, err := entity.NewProposal(j.ID, freelancer.UserID, "Беру", 350, 4)
	require.NoError(t, err)
	pending, err := entity.NewProposal(j.ID, uuid.New(), "Тоже беру", 300, 6)
	require.NoError(t, err)
	require.NoError(t, accepted.Accept())
	require.NoError(t, j.StartWork())
	o, err := entity.NewOrderFromProposal(j, accepted)
	require.NoError(t, err)

	mem.PutJob(j)
	mem.PutProposal(accepted)
	mem.PutProposal(pending)
	mem.PutOrder(o)
	return j, o, pending
}

func TestCancelJob(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels open job and pending proposals are rejected", func(t *testing.T) {
		mem := usecasetest.NewMem()
		events := &usecasetest.Recorder{}
		j, err := entity.NewJob(client.UserID, "Перевод", "Перевод статьи", 50, nil)
		require.NoError(t, err)
		p, err := entity.NewProposal(j.ID, freelancer.UserID, "Переведу", 40, 2)
		require.NoError(t, err)
		mem.PutJob(j)
		mem.PutProposal(p)

		got, err := job.NewCancelJobUseCase(mem, events).Execute(ctx, client, j.ID)
		require.NoError(t, err)
		assert.Equal(t, valueobject.JobStatusCancelled, got.Status)
		stored, _ := mem.Proposal(p.ID)
		assert.Equal(t, valueobject.ProposalStatusRejected, stored.Status)
		assert.Equal(t, []string{event.ProposalRejected}, events.Names())

		_, err = job.NewCancelJobUseCase(mem, events).Execute(ctx, client, j.ID)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("owner cannot cancel job in progress", func(t *testing.T) {
		mem := usecasetest.NewMem()
		j, _, _ := seedInProgress(t, mem)
		_, err := job.NewCancelJobUseCase(mem, event.NopPublisher{}).Execute(ctx, client, j.ID)
		assert.True(t, apperror.IsInvalidState(err))
	})

	t.Run("admin cancel also cancels live order", func(t *testing.T) {
		mem := usecasetest.NewMem()
		j, o, pending := seedInProgress(t, mem)

		_, err := job.NewCancelJobUseCase(mem, event.NopPublisher{}).Execute(ctx, admin, j.ID)
		require.NoError(t, err)
		stored, _ := mem.Order(o.ID)
		assert.Equal(t, valueobject.OrderStatusCancelled, stored.Status)
		p, _ := mem.Proposal(pending.ID)
		assert.Equal(t, valueobject.ProposalStatusRejected, p.Status)
	})
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()

	t.Run("cascade", func(t *testing.T) {
		mem := usecasetest.NewMem()
		j, o, _ := seedInProgress(t, mem)

		err := job.NewDeleteJobUseCase(mem).Execute(ctx, client, j.ID)
		assert.True(t, apperror.IsForbidden(err))

		require.NoError(t, job.NewDeleteJobUseCase(mem).Execute(ctx, admin, j.ID))
		_, ok := mem.Job(j.ID)
		assert.False(t, ok)
		_, ok = mem.Order(o.ID)
		assert.False(t, ok)
		assert.Equal(t, 0, mem.ProposalCount())
	})

	t.Run("failure keeps everything", func(t *testing.T) {
		mem := usecasetest.NewMem()
		j, _, _ := seedInProgress(t, mem)
		mem.Fail("jobs.hard_delete", errors.New("lock timeout"))

		require.Error(t, job.NewDeleteJobUseCase(mem).Execute(ctx, admin, j.ID))
		_, ok := mem.Job(j.ID)
		assert.True(t, ok)
		assert.Equal(t, 2, mem.ProposalCount())
	})

	t.Run("missing job", func(t *testing.T) {
		err := job.NewDeleteJobUseCase(usecasetest.NewMem()).Execute(ctx, admin, uuid.New())
		assert.ErrorIs(t, err, apperror.ErrJobNotFound)
	})
}
