package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/repository/common"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// mapGetErr переводит ошибку чтения одной строки в ошибку приложения.
func mapGetErr(err error, notFound *apperror.AppError, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return apperror.Database(err, msg)
}

// mapWriteErr переводит нарушение уникальности в conflict, остальное в DATABASE_ERROR.
func mapWriteErr(err error, conflict *apperror.AppError, msg string) error {
	if common.IsUniqueViolation(err, "") {
		if conflict == nil {
			conflict = apperror.ErrDuplicate
		}
		return apperror.Wrap(err, conflict.Code, conflict.Message)
	}
	return apperror.Database(err, msg)
}

// whereBuilder собирает условия с позиционными параметрами Postgres.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

// add подставляет номер следующего аргумента вместо каждого "?" в условии.
func (w *whereBuilder) add(clause string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.ReplaceAll(clause, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) raw(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// page добавляет LIMIT/OFFSET и возвращает хвост запроса с полным списком аргументов.
func (w *whereBuilder) page(limit, offset int) (string, []interface{}) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	args := append(append([]interface{}{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)+1, len(w.args)+2), args
}

func likePattern(s string) string {
	return "%" + strings.TrimSpace(s) + "%"
}
