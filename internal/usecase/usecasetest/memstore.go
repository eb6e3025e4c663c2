// Package usecasetest содержит хранилище в памяти для тестов use case'ов.
package usecasetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

// Mem реализует repository.Store и repository.UnitOfWork.
// Do сериализует транзакции и откатывает состояние при ошибке или панике.
type Mem struct {
	txMu sync.Mutex
	mu   sync.Mutex

	jobs      map[uuid.UUID]entity.Job
	proposals map[uuid.UUID]entity.Proposal
	orders    map[uuid.UUID]entity.Order
	disputes  map[uuid.UUID]entity.Dispute
	messages  map[uuid.UUID]entity.Message

	failures map[string]error

	Commits   int
	Rollbacks int
}

func NewMem() *Mem {
	return &Mem{
		jobs:      map[uuid.UUID]entity.Job{},
		proposals: map[uuid.UUID]entity.Proposal{},
		orders:    map[uuid.UUID]entity.Order{},
		disputes:  map[uuid.UUID]entity.Dispute{},
		messages:  map[uuid.UUID]entity.Message{},
		failures:  map[string]error{},
	}
}

// Fail заставляет операцию op (например "orders.create") вернуть err.
func (m *Mem) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

func (m *Mem) fail(op string) error {
	return m.failures[op]
}

type snapshot struct {
	jobs      map[uuid.UUID]entity.Job
	proposals map[uuid.UUID]entity.Proposal
	orders    map[uuid.UUID]entity.Order
	disputes  map[uuid.UUID]entity.Dispute
	messages  map[uuid.UUID]entity.Message
}

func copyMap[V any](src map[uuid.UUID]V) map[uuid.UUID]V {
	dst := make(map[uuid.UUID]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *Mem) snapshot() snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshot{
		jobs:      copyMap(m.jobs),
		proposals: copyMap(m.proposals),
		orders:    copyMap(m.orders),
		disputes:  copyMap(m.disputes),
		messages:  copyMap(m.messages),
	}
}

func (m *Mem) restore(s snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs, m.proposals, m.orders, m.disputes, m.messages = s.jobs, s.proposals, s.orders, s.disputes, s.messages
	m.Rollbacks++
}

func (m *Mem) Do(ctx context.Context, fn func(store repository.Store) error) (err error) {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snap := m.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.restore(snap)
			panic(p)
		}
	}()

	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	m.mu.Lock()
	m.Commits++
	m.mu.Unlock()
	return nil
}

func (m *Mem) Jobs() repository.JobRepository           { return memJobs{m} }
func (m *Mem) Proposals() repository.ProposalRepository { return memProposals{m} }
func (m *Mem) Orders() repository.OrderRepository       { return memOrders{m} }
func (m *Mem) Disputes() repository.DisputeRepository   { return memDisputes{m} }
func (m *Mem) Messages() repository.MessageRepository   { return memMessages{m} }

// Seed-хелперы кладут сущности напрямую, минуя use case'ы.

func (m *Mem) PutJob(j *entity.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = cloneJob(j)
}

func (m *Mem) PutProposal(p *entity.Proposal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proposals[p.ID] = *p
}

func (m *Mem) PutOrder(o *entity.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = *o
}

func (m *Mem) PutDispute(d *entity.Dispute) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disputes[d.ID] = *d
}

func (m *Mem) Job(id uuid.UUID) (entity.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	return j, ok
}

func (m *Mem) Proposal(id uuid.UUID) (entity.Proposal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.proposals[id]
	return p, ok
}

func (m *Mem) Order(id uuid.UUID) (entity.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	return o, ok
}

func (m *Mem) Dispute(id uuid.UUID) (entity.Dispute, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.disputes[id]
	return d, ok
}

func (m *Mem) OrdersForJob(jobID uuid.UUID) []entity.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Order
	for _, o := range m.orders {
		if o.JobID == jobID {
			out = append(out, o)
		}
	}
	return out
}

func (m *Mem) ProposalCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.proposals)
}

func cloneJob(j *entity.Job) entity.Job {
	cp := *j
	cp.Skills = append([]string(nil), j.Skills...)
	return cp
}

func page[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

type memJobs struct{ m *Mem }

func (r memJobs) Create(ctx context.Context, job *entity.Job) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("jobs.create"); err != nil {
		return err
	}
	r.m.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r memJobs) Update(ctx context.Context, job *entity.Job) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("jobs.update"); err != nil {
		return err
	}
	existing, ok := r.m.jobs[job.ID]
	if !ok {
		return apperror.ErrJobNotFound
	}
	cp := cloneJob(job)
	cp.Skills = existing.Skills
	r.m.jobs[job.ID] = cp
	return nil
}

func (r memJobs) ReplaceSkills(ctx context.Context, jobID uuid.UUID, skills []string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("jobs.replace_skills"); err != nil {
		return err
	}
	j, ok := r.m.jobs[jobID]
	if !ok {
		return apperror.ErrJobNotFound
	}
	j.Skills = append([]string(nil), skills...)
	r.m.jobs[jobID] = j
	return nil
}

func (r memJobs) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	j, ok := r.m.jobs[id]
	if !ok {
		return nil, apperror.ErrJobNotFound
	}
	cp := cloneJob(&j)
	return &cp, nil
}

func (r memJobs) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return r.FindByID(ctx, id)
}

func (r memJobs) sorted(keep func(entity.Job) bool) []*entity.Job {
	var out []*entity.Job
	for _, j := range r.m.jobs {
		if keep(j) {
			cp := cloneJob(&j)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out
}

func (r memJobs) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Job, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.sorted(func(j entity.Job) bool { return j.ClientID == clientID }), nil
}

func (r memJobs) List(ctx context.Context, f repository.JobFilter) ([]*entity.Job, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	all := r.sorted(func(j entity.Job) bool {
		if f.Search != "" && !contains(j.Title, f.Search) && !contains(j.Description, f.Search) {
			return false
		}
		if f.Status != "" && string(j.Status) != f.Status {
			return false
		}
		if f.Approval != "" && string(j.Approval) != f.Approval {
			return false
		}
		if f.ExcludeRejected && j.Approval == valueobject.JobApprovalRejected {
			return false
		}
		if f.Skill != "" {
			found := false
			for _, s := range j.Skills {
				if strings.EqualFold(s, f.Skill) {
					found = true
				}
			}
			if !found {
				return false
			}
		}
		if f.BudgetMin != nil && j.Budget.Amount < *f.BudgetMin {
			return false
		}
		if f.BudgetMax != nil && j.Budget.Amount > *f.BudgetMax {
			return false
		}
		return true
	})
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r memJobs) HardDelete(ctx context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("jobs.hard_delete"); err != nil {
		return err
	}
	if _, ok := r.m.jobs[id]; !ok {
		return apperror.ErrJobNotFound
	}
	for oid, o := range r.m.orders {
		if o.JobID != id {
			continue
		}
		for did, d := range r.m.disputes {
			if d.OrderID == oid {
				delete(r.m.disputes, did)
			}
		}
		delete(r.m.orders, oid)
	}
	for mid, msg := range r.m.messages {
		if msg.JobID == id {
			delete(r.m.messages, mid)
		}
	}
	for pid, p := range r.m.proposals {
		if p.JobID == id {
			delete(r.m.proposals, pid)
		}
	}
	delete(r.m.jobs, id)
	return nil
}

func (r memJobs) CountByStatus(ctx context.Context) (map[string]int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := map[string]int{}
	for _, j := range r.m.jobs {
		out[string(j.Status)]++
	}
	return out, nil
}

func (r memJobs) CountPendingApproval(ctx context.Context) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n := 0
	for _, j := range r.m.jobs {
		if j.Approval == valueobject.JobApprovalPending {
			n++
		}
	}
	return n, nil
}

func (r memJobs) ListSkillCounts(ctx context.Context, search string) ([]repository.SkillCount, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	counts := map[string]int{}
	for _, j := range r.m.jobs {
		for _, s := range j.Skills {
			if search == "" || contains(s, search) {
				counts[s]++
			}
		}
	}
	out := make([]repository.SkillCount, 0, len(counts))
	for skill, n := range counts {
		out = append(out, repository.SkillCount{Skill: skill, JobCount: n})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Skill < out[k].Skill })
	return out, nil
}

func (r memJobs) RenameSkill(ctx context.Context, from, to string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("jobs.rename_skill"); err != nil {
		return 0, err
	}
	var n int64
	for id, j := range r.m.jobs {
		idx, dup := -1, false
		for i, s := range j.Skills {
			if s == from {
				idx = i
			} else if strings.EqualFold(s, to) {
				dup = true
			}
		}
		if idx < 0 {
			continue
		}
		skills := append([]string(nil), j.Skills...)
		if dup {
			skills = append(skills[:idx], skills[idx+1:]...)
		} else {
			skills[idx] = to
		}
		j.Skills = skills
		r.m.jobs[id] = j
		n++
	}
	return n, nil
}

func (r memJobs) DeleteSkill(ctx context.Context, skill string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("jobs.delete_skill"); err != nil {
		return 0, err
	}
	var n int64
	for id, j := range r.m.jobs {
		kept := make([]string, 0, len(j.Skills))
		for _, s := range j.Skills {
			if s == skill {
				n++
				continue
			}
			kept = append(kept, s)
		}
		j.Skills = kept
		r.m.jobs[id] = j
	}
	return n, nil
}

type memProposals struct{ m *Mem }

func (r memProposals) Create(ctx context.Context, p *entity.Proposal) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("proposals.create"); err != nil {
		return err
	}
	for _, existing := range r.m.proposals {
		if existing.JobID == p.JobID && existing.FreelancerID == p.FreelancerID {
			return apperror.ErrDuplicateProposal
		}
	}
	r.m.proposals[p.ID] = *p
	return nil
}

func (r memProposals) Update(ctx context.Context, p *entity.Proposal) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("proposals.update"); err != nil {
		return err
	}
	if _, ok := r.m.proposals[p.ID]; !ok {
		return apperror.ErrProposalNotFound
	}
	if p.Status == valueobject.ProposalStatusAccepted {
		for _, other := range r.m.proposals {
			if other.ID != p.ID && other.JobID == p.JobID && other.Status == valueobject.ProposalStatusAccepted {
				return apperror.ErrAlreadyAccepted
			}
		}
	}
	r.m.proposals[p.ID] = *p
	return nil
}

func (r memProposals) Delete(ctx context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.proposals[id]; !ok {
		return apperror.ErrProposalNotFound
	}
	delete(r.m.proposals, id)
	return nil
}

func (r memProposals) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.proposals[id]
	if !ok {
		return nil, apperror.ErrProposalNotFound
	}
	return &p, nil
}

func (r memProposals) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	return r.FindByID(ctx, id)
}

func (r memProposals) filter(keep func(entity.Proposal) bool) []*entity.Proposal {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Proposal
	for _, p := range r.m.proposals {
		if keep(p) {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out
}

func (r memProposals) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]*entity.Proposal, error) {
	return r.filter(func(p entity.Proposal) bool { return p.JobID == jobID }), nil
}

func (r memProposals) FindByFreelancerID(ctx context.Context, freelancerID uuid.UUID) ([]*entity.Proposal, error) {
	return r.filter(func(p entity.Proposal) bool { return p.FreelancerID == freelancerID }), nil
}

func (r memProposals) FindByJobAndFreelancer(ctx context.Context, jobID, freelancerID uuid.UUID) (*entity.Proposal, error) {
	found := r.filter(func(p entity.Proposal) bool { return p.JobID == jobID && p.FreelancerID == freelancerID })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r memProposals) FindAcceptedByJob(ctx context.Context, jobID uuid.UUID) (*entity.Proposal, error) {
	found := r.filter(func(p entity.Proposal) bool {
		return p.JobID == jobID && p.Status == valueobject.ProposalStatusAccepted
	})
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r memProposals) RejectPendingByJob(ctx context.Context, jobID, exceptID uuid.UUID) ([]uuid.UUID, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("proposals.reject_pending"); err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	for id, p := range r.m.proposals {
		if p.JobID == jobID && id != exceptID && p.Status == valueobject.ProposalStatusPending {
			p.Status = valueobject.ProposalStatusRejected
			r.m.proposals[id] = p
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type memOrders struct{ m *Mem }

func (r memOrders) Create(ctx context.Context, o *entity.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("orders.create"); err != nil {
		return err
	}
	for _, existing := range r.m.orders {
		if existing.ProposalID == o.ProposalID {
			return apperror.ErrAlreadyAccepted
		}
	}
	r.m.orders[o.ID] = *o
	return nil
}

func (r memOrders) Update(ctx context.Context, o *entity.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("orders.update"); err != nil {
		return err
	}
	if _, ok := r.m.orders[o.ID]; !ok {
		return apperror.ErrOrderNotFound
	}
	r.m.orders[o.ID] = *o
	return nil
}

func (r memOrders) Delete(ctx context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.orders[id]; !ok {
		return apperror.ErrOrderNotFound
	}
	for did, d := range r.m.disputes {
		if d.OrderID == id {
			delete(r.m.disputes, did)
		}
	}
	delete(r.m.orders, id)
	return nil
}

func (r memOrders) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.orders[id]
	if !ok {
		return nil, apperror.ErrOrderNotFound
	}
	return &o, nil
}

func (r memOrders) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.FindByID(ctx, id)
}

func (r memOrders) FindActiveByJobForUpdate(ctx context.Context, jobID uuid.UUID) (*entity.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, o := range r.m.orders {
		if o.JobID == jobID && !o.Status.IsTerminal() {
			cp := o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memOrders) List(ctx context.Context, f repository.OrderFilter) ([]*repository.OrderView, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*repository.OrderView
	for _, o := range r.m.orders {
		if f.ClientID != nil && o.ClientID != *f.ClientID {
			continue
		}
		if f.FreelancerID != nil && o.FreelancerID != *f.FreelancerID {
			continue
		}
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		title := r.m.jobs[o.JobID].Title
		if f.Search != "" && !contains(title, f.Search) {
			continue
		}
		cp := o
		out = append(out, &repository.OrderView{Order: &cp, JobTitle: title})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (r memOrders) CountByStatus(ctx context.Context) (map[string]int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := map[string]int{}
	for _, o := range r.m.orders {
		out[string(o.Status)]++
	}
	return out, nil
}

type memDisputes struct{ m *Mem }

func (r memDisputes) Create(ctx context.Context, d *entity.Dispute) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.disputes {
		if existing.OrderID == d.OrderID && existing.Status == valueobject.DisputeStatusOpen {
			return apperror.ErrDisputeOpen
		}
	}
	r.m.disputes[d.ID] = *d
	return nil
}

func (r memDisputes) Update(ctx context.Context, d *entity.Dispute) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.disputes[d.ID]; !ok {
		return apperror.ErrDisputeNotFound
	}
	r.m.disputes[d.ID] = *d
	return nil
}

func (r memDisputes) Delete(ctx context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.disputes[id]; !ok {
		return apperror.ErrDisputeNotFound
	}
	delete(r.m.disputes, id)
	return nil
}

func (r memDisputes) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dispute, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.disputes[id]
	if !ok {
		return nil, apperror.ErrDisputeNotFound
	}
	return &d, nil
}

func (r memDisputes) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Dispute, error) {
	return r.FindByID(ctx, id)
}

func (r memDisputes) FindOpenByOrder(ctx context.Context, orderID uuid.UUID) (*entity.Dispute, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, d := range r.m.disputes {
		if d.OrderID == orderID && d.Status == valueobject.DisputeStatusOpen {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memDisputes) List(ctx context.Context, f repository.DisputeFilter) ([]*repository.DisputeView, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*repository.DisputeView
	for _, d := range r.m.disputes {
		if f.Status != "" && string(d.Status) != f.Status {
			continue
		}
		order := r.m.orders[d.OrderID]
		title := r.m.jobs[order.JobID].Title
		if f.Search != "" && !contains(d.Reason, f.Search) && !contains(title, f.Search) {
			continue
		}
		cp := d
		out = append(out, &repository.DisputeView{Dispute: &cp, JobID: order.JobID, JobTitle: title})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (r memDisputes) CountOpen(ctx context.Context) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n := 0
	for _, d := range r.m.disputes {
		if d.Status == valueobject.DisputeStatusOpen {
			n++
		}
	}
	return n, nil
}

type memMessages struct{ m *Mem }

func (r memMessages) Create(ctx context.Context, msg *entity.Message) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.messages[msg.ID] = *msg
	return nil
}

func (r memMessages) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.Message, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Message
	for _, msg := range r.m.messages {
		if msg.JobID == jobID {
			cp := msg
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.Before(out[k].CreatedAt) })
	return out, nil
}

func (r memMessages) MarkRead(ctx context.Context, jobID, receiverID uuid.UUID) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for id, msg := range r.m.messages {
		if msg.JobID == jobID && msg.ReceiverID == receiverID && !msg.IsRead {
			msg.IsRead = true
			r.m.messages[id] = msg
			n++
		}
	}
	return n, nil
}

var (
	_ repository.Store      = (*Mem)(nil)
	_ repository.UnitOfWork = (*Mem)(nil)
)
