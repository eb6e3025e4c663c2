package admin_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/service"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/admin"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/usecasetest"
)

func TestGetStats(t *testing.T) {
	mem := usecasetest.NewMem()
	clientID := uuid.New()

	open, err := entity.NewJob(clientID, "Открытая", "Ждёт откликов", 10, nil)
	require.NoError(t, err)
	busy, err := entity.NewJob(clientID, "В работе", "Уже делают", 20, nil)
	require.NoError(t, err)
	require.NoError(t, busy.SetApproval(valueobject.JobApprovalApproved))
	p, err := entity.NewProposal(busy.ID, uuid.New(), "Делаю", 20, 1)
	require.NoError(t, err)
	require.NoError(t, p.Accept())
	require.NoError(t, busy.StartWork())
	o, err := entity.NewOrderFromProposal(busy, p)
	require.NoError(t, err)
	d, err := entity.NewDispute(o, clientID, "Долго")
	require.NoError(t, err)

	mem.PutJob(open)
	mem.PutJob(busy)
	mem.PutProposal(p)
	mem.PutOrder(o)
	mem.PutDispute(d)

	ctx := context.Background()
	_, err = admin.NewGetStatsUseCase(mem).Execute(ctx, valueobject.Identity{UserID: clientID, Role: valueobject.RoleClient})
	assert.True(t, apperror.IsForbidden(err))

	stats, err := admin.NewGetStatsUseCase(mem).Execute(ctx, valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"open": 1, "in_progress": 1}, stats.JobsByStatus)
	assert.Equal(t, 1, stats.PendingApproval)
	assert.Equal(t, map[string]int{"in_progress": 1}, stats.OrdersByStatus)
	assert.Equal(t, 1, stats.OpenDisputes)
}

func TestGetStats_Cached(t *testing.T) {
	mem := usecasetest.NewMem()
	adminID := valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleAdmin}
	uc := admin.NewGetStatsUseCase(mem).WithCache(service.NewCacheService(), time.Minute)

	first, err := uc.Execute(context.Background(), adminID)
	require.NoError(t, err)
	assert.Empty(t, first.JobsByStatus)

	j, err := entity.NewJob(uuid.New(), "Новая", "Описание", 10, nil)
	require.NoError(t, err)
	mem.PutJob(j)

	second, err := uc.Execute(context.Background(), adminID)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = uc.Execute(context.Background(), valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleFreelancer})
	assert.True(t, apperror.IsForbidden(err), "кэш не обходит проверку роли")
}
