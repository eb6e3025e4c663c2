package repository

import "context"

// Store: набор репозиториев, работающих на одном соединении или транзакции.
type Store interface {
	Jobs() JobRepository
	Proposals() ProposalRepository
	Orders() OrderRepository
	Disputes() DisputeRepository
	Messages() MessageRepository
}

// UnitOfWork выполняет fn в одной транзакции. Ошибка или паника откатывают всё.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(store Store) error) error
}
