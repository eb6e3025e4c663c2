package persistence

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

var jobCols = []string{"id", "client_id", "title", "description", "budget", "status", "approval", "created_at", "updated_at"}

func TestJobRepository_CreateInsertsSkillsInOneBatch(t *testing.T) {
	db, mock := newMockDB(t)
	job, err := entity.NewJob(uuid.New(), "Лендинг", "Нужен лендинг", 300, []string{"go", "sql"})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO jobs")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO job_skills (job_id, position, skill) VALUES ($1, $2, $3), ($4, $5, $6)")).
		WithArgs(job.ID, 0, "go", job.ID, 1, "sql").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, NewJobRepositoryAdapter(db).Create(context.Background(), job))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs j WHERE j.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(jobCols))

	_, err := NewJobRepositoryAdapter(db).FindByID(context.Background(), id)
	assert.ErrorIs(t, err, apperror.ErrJobNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_FindByIDLoadsSkills(t *testing.T) {
	db, mock := newMockDB(t)
	id, clientID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs j WHERE j.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(jobCols).
			AddRow(id.String(), clientID.String(), "Бот", "Телеграм бот", 150.5, "open", "approved", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT job_id, skill FROM job_skills WHERE job_id = ANY($1)")).
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "skill"}).
			AddRow(id.String(), "go").
			AddRow(id.String(), "telegram"))

	job, err := NewJobRepositoryAdapter(db).FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, clientID, job.ClientID)
	assert.Equal(t, valueobject.JobStatusOpen, job.Status)
	assert.Equal(t, 150.5, job.Budget.Amount)
	assert.Equal(t, []string{"go", "telegram"}, job.Skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_ListBuildsFilters(t *testing.T) {
	db, mock := newMockDB(t)
	min := 100.0

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM jobs j WHERE (j.title ILIKE $1 OR j.description ILIKE $1) AND j.status = $2 AND j.approval <> 'rejected' AND j.budget >= $3")).
		WithArgs("%бот%", "open", min).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY j.created_at DESC LIMIT $4 OFFSET $5")).
		WithArgs("%бот%", "open", min, 10, 0).
		WillReturnRows(sqlmock.NewRows(jobCols))

	jobs, total, err := NewJobRepositoryAdapter(db).List(context.Background(), repository.JobFilter{
		Search:          " бот ",
		Status:          "open",
		ExcludeRejected: true,
		BudgetMin:       &min,
		Limit:           10,
	})
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_HardDeleteCascadeCommits(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM disputes WHERE order_id IN (SELECT id FROM orders WHERE job_id = $1)")).
		WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM messages WHERE job_id = $1")).
		WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM job_skills WHERE job_id = $1")).
		WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders WHERE job_id = $1")).
		WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM proposals WHERE job_id = $1")).
		WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM jobs WHERE id = $1")).
		WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewUnitOfWork(db).Do(context.Background(), func(s repository.Store) error {
		return s.Jobs().HardDelete(context.Background(), id)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_HardDeleteCascadeRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM disputes")).
		WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM messages")).
		WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM job_skills")).
		WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders")).
		WithArgs(id).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := NewUnitOfWork(db).Do(context.Background(), func(s repository.Store) error {
		return s.Jobs().HardDelete(context.Background(), id)
	})
	require.Error(t, err)
	assert.Equal(t, apperror.ErrCodeDatabaseError, apperror.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProposalRepository_DuplicateMapsToConflict(t *testing.T) {
	db, mock := newMockDB(t)
	p, err := entity.NewProposal(uuid.New(), uuid.New(), "Сделаю быстро", 100, 3)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO proposals")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_proposals_job_freelancer"})

	err = NewProposalRepositoryAdapter(db).Create(context.Background(), p)
	assert.True(t, apperror.IsConflict(err))
	assert.ErrorIs(t, err, apperror.ErrDuplicateProposal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProposalRepository_RejectPendingReturnsIDs(t *testing.T) {
	db, mock := newMockDB(t)
	jobID, keep := uuid.New(), uuid.New()
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE proposals SET status = 'rejected'")).
		WithArgs(jobID, keep).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(a.String()).AddRow(b.String()))

	ids, err := NewProposalRepositoryAdapter(db).RejectPendingByJob(context.Background(), jobID, keep)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_FindActiveByJobNone(t *testing.T) {
	db, mock := newMockDB(t)
	jobID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("o.status NOT IN ('completed', 'cancelled')")).
		WithArgs(jobID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	order, err := NewOrderRepositoryAdapter(db).FindActiveByJobForUpdate(context.Background(), jobID)
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	order := &entity.Order{ID: uuid.New(), Status: valueobject.OrderStatusDelivered, UpdatedAt: time.Now()}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $2")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewOrderRepositoryAdapter(db).Update(context.Background(), order)
	assert.ErrorIs(t, err, apperror.ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisputeRepository_SecondOpenDisputeConflicts(t *testing.T) {
	db, mock := newMockDB(t)
	d := &entity.Dispute{ID: uuid.New(), OrderID: uuid.New(), Status: valueobject.DisputeStatusOpen, CreatedAt: time.Now()}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO disputes")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_disputes_one_open_per_order"})

	err := NewDisputeRepositoryAdapter(db).Create(context.Background(), d)
	assert.True(t, apperror.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepository_GetOrCreateUsesSingleUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (user_id) DO UPDATE SET updated_at = wallets.updated_at")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "balance", "created_at", "updated_at"}).
			AddRow(userID.String(), 0.0, now, now))

	w, err := NewWalletRepositoryAdapter(db).GetOrCreate(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, w.UserID)
	assert.Zero(t, w.Balance.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepository_ConcurrentFirstAccessIssuesOnlyUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)
	userID := uuid.New()
	created := time.Now()

	// Оба обращения должны уйти одним INSERT ... ON CONFLICT, без отдельного SELECT перед вставкой.
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO wallets")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "balance", "created_at", "updated_at"}).
				AddRow(userID.String(), 0.0, created, created))
	}

	repo := NewWalletRepositoryAdapter(db)
	var (
		wg      sync.WaitGroup
		results [2]*entity.Wallet
		errs    [2]error
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.GetOrCreate(context.Background(), userID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, userID, results[i].UserID)
		assert.Zero(t, results[i].Balance.Amount)
	}
	assert.True(t, results[0].CreatedAt.Equal(results[1].CreatedAt), "оба вызова видят одну и ту же строку")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_ListSkillCounts(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT s.skill, COUNT(DISTINCT s.job_id) AS job_count FROM job_skills s WHERE s.skill ILIKE $1 GROUP BY s.skill ORDER BY s.skill")).
		WithArgs("%go%").
		WillReturnRows(sqlmock.NewRows([]string{"skill", "job_count"}).
			AddRow("go", 3).
			AddRow("golang", 1))

	skills, err := NewJobRepositoryAdapter(db).ListSkillCounts(context.Background(), "go")
	require.NoError(t, err)
	assert.Equal(t, []repository.SkillCount{{Skill: "go", JobCount: 3}, {Skill: "golang", JobCount: 1}}, skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_ListSkillCountsWithoutSearch(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM job_skills s GROUP BY s.skill ORDER BY s.skill")).
		WillReturnRows(sqlmock.NewRows([]string{"skill", "job_count"}))

	skills, err := NewJobRepositoryAdapter(db).ListSkillCounts(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_RenameSkillMergesDuplicates(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM job_skills s")).
		WithArgs("golang", "Go").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE job_skills SET skill = $2 WHERE skill = $1")).
		WithArgs("golang", "Go").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	var n int64
	err := NewUnitOfWork(db).Do(context.Background(), func(s repository.Store) error {
		var err error
		n, err = s.Jobs().RenameSkill(context.Background(), "golang", "Go")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_RenameSkillRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM job_skills s")).
		WithArgs("golang", "Go").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE job_skills SET skill")).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := NewUnitOfWork(db).Do(context.Background(), func(s repository.Store) error {
		_, err := s.Jobs().RenameSkill(context.Background(), "golang", "Go")
		return err
	})
	assert.Equal(t, apperror.ErrCodeDatabaseError, apperror.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_DeleteSkill(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM job_skills WHERE skill = $1")).
		WithArgs("php").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := NewJobRepositoryAdapter(db).DeleteSkill(context.Background(), "php")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkRead(t *testing.T) {
	db, mock := newMockDB(t)
	jobID, reader := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE messages SET is_read = TRUE")).
		WithArgs(jobID, reader).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := NewMessageRepositoryAdapter(db).MarkRead(context.Background(), jobID, reader)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
