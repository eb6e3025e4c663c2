package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/repository/common"
)

const jobColumns = `j.id, j.client_id, j.title, j.description, j.budget, j.status, j.approval, j.created_at, j.updated_at`

const insertSkillsQuery = `INSERT INTO job_skills (job_id, position, skill)`

type JobRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewJobRepositoryAdapter(q sqlx.ExtContext) *JobRepositoryAdapter {
	return &JobRepositoryAdapter{q: q}
}

func (r *JobRepositoryAdapter) Create(ctx context.Context, job *entity.Job) error {
	query := `
		INSERT INTO jobs (id, client_id, title, description, budget, status, approval, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.q.ExecContext(ctx, query,
		job.ID, job.ClientID, job.Title, job.Description, job.Budget.Amount,
		string(job.Status), string(job.Approval), job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr(err, nil, "не удалось создать вакансию")
	}
	return r.insertSkills(ctx, job.ID, job.Skills)
}

func (r *JobRepositoryAdapter) Update(ctx context.Context, job *entity.Job) error {
	query := `
		UPDATE jobs SET title = $2, description = $3, budget = $4, status = $5, approval = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.q.ExecContext(ctx, query,
		job.ID, job.Title, job.Description, job.Budget.Amount,
		string(job.Status), string(job.Approval), job.UpdatedAt,
	)
	if err != nil {
		return apperror.Database(err, "не удалось обновить вакансию")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryAdapter) ReplaceSkills(ctx context.Context, jobID uuid.UUID, skills []string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM job_skills WHERE job_id = $1`, jobID); err != nil {
		return apperror.Database(err, "не удалось обновить навыки вакансии")
	}
	return r.insertSkills(ctx, jobID, skills)
}

func (r *JobRepositoryAdapter) insertSkills(ctx context.Context, jobID uuid.UUID, skills []string) error {
	if len(skills) == 0 {
		return nil
	}
	bi := common.NewBatchInserter(r.q, insertSkillsQuery, 3, len(skills))
	for i, skill := range skills {
		if err := bi.Add(ctx, jobID, i, skill); err != nil {
			return apperror.Database(err, "не удалось сохранить навыки вакансии")
		}
	}
	if err := bi.Flush(ctx); err != nil {
		return apperror.Database(err, "не удалось сохранить навыки вакансии")
	}
	return nil
}

func (r *JobRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return r.findOne(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id)
}

func (r *JobRepositoryAdapter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return r.findOne(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1 FOR UPDATE`, id)
}

func (r *JobRepositoryAdapter) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Job, error) {
	var row jobRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		return nil, mapGetErr(err, apperror.ErrJobNotFound, "не удалось получить вакансию")
	}
	jobs := []*entity.Job{row.toEntity()}
	if err := r.attachSkills(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs[0], nil
}

func (r *JobRepositoryAdapter) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Job, error) {
	var rows []jobRow
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.client_id = $1 ORDER BY j.created_at DESC`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, clientID); err != nil {
		return nil, apperror.Database(err, "не удалось получить вакансии")
	}
	jobs := toJobEntities(rows)
	if err := r.attachSkills(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepositoryAdapter) List(ctx context.Context, filter repository.JobFilter) ([]*entity.Job, int, error) {
	var w whereBuilder
	if filter.Search != "" {
		w.add("(j.title ILIKE ? OR j.description ILIKE ?)", likePattern(filter.Search))
	}
	if filter.Status != "" {
		w.add("j.status = ?", filter.Status)
	}
	if filter.Approval != "" {
		w.add("j.approval = ?", filter.Approval)
	}
	if filter.ExcludeRejected {
		w.raw("j.approval <> 'rejected'")
	}
	if filter.Skill != "" {
		w.add("EXISTS (SELECT 1 FROM job_skills s WHERE s.job_id = j.id AND LOWER(s.skill) = LOWER(?))", filter.Skill)
	}
	if filter.BudgetMin != nil {
		w.add("j.budget >= ?", *filter.BudgetMin)
	}
	if filter.BudgetMax != nil {
		w.add("j.budget <= ?", *filter.BudgetMax)
	}

	var total int
	if err := sqlx.GetContext(ctx, r.q, &total, `SELECT COUNT(*) FROM jobs j`+w.String(), w.args...); err != nil {
		return nil, 0, apperror.Database(err, "не удалось посчитать вакансии")
	}

	tail, args := w.page(filter.Limit, filter.Offset)
	query := `SELECT ` + jobColumns + ` FROM jobs j` + w.String() + ` ORDER BY j.created_at DESC` + tail

	var rows []jobRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, 0, apperror.Database(err, "не удалось получить вакансии")
	}
	jobs := toJobEntities(rows)
	if err := r.attachSkills(ctx, jobs); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// HardDelete должен вызываться внутри транзакции: удаления идут несколькими запросами.
func (r *JobRepositoryAdapter) HardDelete(ctx context.Context, id uuid.UUID) error {
	steps := []struct {
		query string
		msg   string
	}{
		{`DELETE FROM disputes WHERE order_id IN (SELECT id FROM orders WHERE job_id = $1)`, "не удалось удалить споры вакансии"},
		{`DELETE FROM messages WHERE job_id = $1`, "не удалось удалить сообщения вакансии"},
		{`DELETE FROM job_skills WHERE job_id = $1`, "не удалось удалить навыки вакансии"},
		{`DELETE FROM orders WHERE job_id = $1`, "не удалось удалить заказы вакансии"},
		{`DELETE FROM proposals WHERE job_id = $1`, "не удалось удалить отклики вакансии"},
	}
	for _, step := range steps {
		if _, err := r.q.ExecContext(ctx, step.query, id); err != nil {
			return apperror.Database(err, step.msg)
		}
	}

	res, err := r.q.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return apperror.Database(err, "не удалось удалить вакансию")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryAdapter) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countBy(ctx, r.q, `SELECT status AS key, COUNT(*) AS count FROM jobs GROUP BY status`, "не удалось посчитать вакансии")
}

func (r *JobRepositoryAdapter) CountPendingApproval(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM jobs WHERE approval = 'pending'`); err != nil {
		return 0, apperror.Database(err, "не удалось посчитать вакансии на модерации")
	}
	return n, nil
}

func (r *JobRepositoryAdapter) ListSkillCounts(ctx context.Context, search string) ([]repository.SkillCount, error) {
	var w whereBuilder
	if search != "" {
		w.add("s.skill ILIKE ?", likePattern(search))
	}
	query := `SELECT s.skill, COUNT(DISTINCT s.job_id) AS job_count FROM job_skills s` + w.String() +
		` GROUP BY s.skill ORDER BY s.skill`

	var rows []struct {
		Skill    string `db:"skill"`
		JobCount int    `db:"job_count"`
	}
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, w.args...); err != nil {
		return nil, apperror.Database(err, "не удалось получить навыки")
	}
	skills := make([]repository.SkillCount, len(rows))
	for i, row := range rows {
		skills[i] = repository.SkillCount{Skill: row.Skill, JobCount: row.JobCount}
	}
	return skills, nil
}

// RenameSkill сначала убирает старый навык у вакансий, где новый уже есть,
// иначе у вакансии появился бы повтор.
func (r *JobRepositoryAdapter) RenameSkill(ctx context.Context, from, to string) (int64, error) {
	dedup := `
		DELETE FROM job_skills s
		WHERE s.skill = $1 AND EXISTS (
			SELECT 1 FROM job_skills o
			WHERE o.job_id = s.job_id AND o.skill <> $1 AND LOWER(o.skill) = LOWER($2)
		)
	`
	res, err := r.q.ExecContext(ctx, dedup, from, to)
	if err != nil {
		return 0, apperror.Database(err, "не удалось переименовать навык")
	}
	merged, _ := res.RowsAffected()

	res, err = r.q.ExecContext(ctx, `UPDATE job_skills SET skill = $2 WHERE skill = $1`, from, to)
	if err != nil {
		return 0, apperror.Database(err, "не удалось переименовать навык")
	}
	renamed, _ := res.RowsAffected()
	return merged + renamed, nil
}

func (r *JobRepositoryAdapter) DeleteSkill(ctx context.Context, skill string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM job_skills WHERE skill = $1`, skill)
	if err != nil {
		return 0, apperror.Database(err, "не удалось удалить навык")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// attachSkills загружает навыки одним запросом для всех вакансий.
func (r *JobRepositoryAdapter) attachSkills(ctx context.Context, jobs []*entity.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(jobs))
	byID := make(map[uuid.UUID]*entity.Job, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
		byID[j.ID] = j
		j.Skills = []string{}
	}

	var rows []struct {
		JobID uuid.UUID `db:"job_id"`
		Skill string    `db:"skill"`
	}
	query := `SELECT job_id, skill FROM job_skills WHERE job_id = ANY($1) ORDER BY job_id, position`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, pq.Array(ids)); err != nil {
		return apperror.Database(err, "не удалось получить навыки вакансий")
	}
	for _, row := range rows {
		if j, ok := byID[row.JobID]; ok {
			j.Skills = append(j.Skills, row.Skill)
		}
	}
	return nil
}

func countBy(ctx context.Context, q sqlx.QueryerContext, query, msg string) (map[string]int, error) {
	var rows []struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}
	if err := sqlx.SelectContext(ctx, q, &rows, query); err != nil {
		return nil, apperror.Database(err, msg)
	}
	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.Key] = row.Count
	}
	return result, nil
}

type jobRow struct {
	ID          uuid.UUID `db:"id"`
	ClientID    uuid.UUID `db:"client_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Budget      float64   `db:"budget"`
	Status      string    `db:"status"`
	Approval    string    `db:"approval"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (j *jobRow) toEntity() *entity.Job {
	return &entity.Job{
		ID:          j.ID,
		ClientID:    j.ClientID,
		Title:       j.Title,
		Description: j.Description,
		Budget:      valueobject.MoneyFromDB(j.Budget),
		Status:      valueobject.JobStatus(j.Status),
		Approval:    valueobject.JobApproval(j.Approval),
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func toJobEntities(rows []jobRow) []*entity.Job {
	result := make([]*entity.Job, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}
