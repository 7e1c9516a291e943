package calculator

import (
	"fmt"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	custom_error "github.com/BekaChkhiro/dealer-app-sub000/pkg/errors"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
)

type CalculatorRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *CalculatorRepository {
	return &CalculatorRepository{repository: r}
}

func (r *CalculatorRepository) List(p listing.Params) ([]models.CalculatorEntry, int, error) {
	base := r.repository.GoquDBWrapper.From("calculator_entries")

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count calculator entries: %w", err)
	}

	var rows []models.CalculatorEntry
	if err := p.Apply(base).Executor().ScanStructs(&rows); err != nil {
		return nil, 0, fmt.Errorf("unable to list calculator entries: %w", err)
	}

	return rows, int(total), nil
}

func (r *CalculatorRepository) Get(id int) (*models.CalculatorEntry, error) {
	var entry models.CalculatorEntry

	query := r.repository.GoquDBWrapper.From("calculator_entries").Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&entry)
	if err != nil {
		return nil, fmt.Errorf("unable to get calculator entry: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &entry, nil
}

func (r *CalculatorRepository) Create(req models.CalculatorEntryRequest) (*models.CalculatorEntry, error) {
	price := decimal.Zero
	if req.Price != nil {
		price = *req.Price
	}

	row := goqu.Record{
		"auction": req.Auction,
		"city":    req.City,
		"port":    req.Port,
		"price":   price,
	}

	query := r.repository.GoquDBWrapper.Insert("calculator_entries").Rows(row).Returning("id")

	var id int
	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to insert calculator entry: %w", err))
	}

	return r.Get(id)
}

func (r *CalculatorRepository) Update(id int, changes goqu.Record) (*models.CalculatorEntry, error) {
	query := r.repository.GoquDBWrapper.Update("calculator_entries").Set(changes).Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to update calculator entry: %w", err))
	}

	return r.Get(id)
}

func (r *CalculatorRepository) Delete(id int) error {
	query := r.repository.GoquDBWrapper.Delete("calculator_entries").Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to delete calculator entry: %w", err)
	}

	return nil
}

func (r *CalculatorRepository) DeleteMany(ids []int) ([]int, error) {
	query := r.repository.GoquDBWrapper.Delete("calculator_entries").
		Where(goqu.Ex{"id": ids}).
		Returning("id")

	var deletedIDs []int
	if err := query.Executor().ScanVals(&deletedIDs); err != nil {
		return nil, fmt.Errorf("failed to bulk delete calculator entries: %w", err)
	}

	return deletedIDs, nil
}
