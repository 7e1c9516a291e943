package transactions

import (
	"fmt"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	custom_error "github.com/BekaChkhiro/dealer-app-sub000/pkg/errors"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type TransactionRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *TransactionRepository {
	return &TransactionRepository{repository: r}
}

// List returns transactions, restricted to the given payer username
// for non-privileged callers.
func (r *TransactionRepository) List(p listing.Params, payer *string) ([]models.Transaction, int, error) {
	base := r.repository.GoquDBWrapper.From("transactions")
	if payer != nil {
		base = base.Where(goqu.Ex{"payer": *payer})
	}

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count transactions: %w", err)
	}

	var rows []models.Transaction
	if err := p.Apply(base).Executor().ScanStructs(&rows); err != nil {
		return nil, 0, fmt.Errorf("unable to list transactions: %w", err)
	}

	return rows, int(total), nil
}

func (r *TransactionRepository) Get(id int) (*models.Transaction, error) {
	var transaction models.Transaction

	query := r.repository.GoquDBWrapper.From("transactions").Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&transaction)
	if err != nil {
		return nil, fmt.Errorf("unable to get transaction: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &transaction, nil
}

func (r *TransactionRepository) Update(id int, changes goqu.Record) (*models.Transaction, error) {
	query := r.repository.GoquDBWrapper.Update("transactions").Set(changes).Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to update transaction: %w", err))
	}

	return r.Get(id)
}

func (r *TransactionRepository) Delete(id int) error {
	query := r.repository.GoquDBWrapper.Delete("transactions").Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}

func (r *TransactionRepository) DeleteMany(ids []int) ([]int, error) {
	query := r.repository.GoquDBWrapper.Delete("transactions").
		Where(goqu.Ex{"id": ids}).
		Returning("id")

	var deletedIDs []int
	if err := query.Executor().ScanVals(&deletedIDs); err != nil {
		return nil, fmt.Errorf("failed to bulk delete transactions: %w", err)
	}

	return deletedIDs, nil
}
