package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/repository/common"
)

// Store связывает все адаптеры с одним исполнителем запросов: *sqlx.DB или *sqlx.Tx.
type Store struct {
	jobs      *JobRepositoryAdapter
	proposals *ProposalRepositoryAdapter
	orders    *OrderRepositoryAdapter
	disputes  *DisputeRepositoryAdapter
	messages  *MessageRepositoryAdapter
}

func NewStore(q sqlx.ExtContext) *Store {
	return &Store{
		jobs:      NewJobRepositoryAdapter(q),
		proposals: NewProposalRepositoryAdapter(q),
		orders:    NewOrderRepositoryAdapter(q),
		disputes:  NewDisputeRepositoryAdapter(q),
		messages:  NewMessageRepositoryAdapter(q),
	}
}

func (s *Store) Jobs() repository.JobRepository           { return s.jobs }
func (s *Store) Proposals() repository.ProposalRepository { return s.proposals }
func (s *Store) Orders() repository.OrderRepository       { return s.orders }
func (s *Store) Disputes() repository.DisputeRepository   { return s.disputes }
func (s *Store) Messages() repository.MessageRepository   { return s.messages }

type UnitOfWork struct {
	db *sqlx.DB
}

func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(store repository.Store) error) error {
	return common.WithTransaction(ctx, u.db, func(tx *sqlx.Tx) error {
		return fn(NewStore(tx))
	})
}

var (
	_ repository.Store      = (*Store)(nil)
	_ repository.UnitOfWork = (*UnitOfWork)(nil)
)
