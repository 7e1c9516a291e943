package boats

import (
	"fmt"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	custom_error "github.com/BekaChkhiro/dealer-app-sub000/pkg/errors"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type BoatRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *BoatRepository {
	return &BoatRepository{repository: r}
}

func (r *BoatRepository) List(p listing.Params) ([]models.Boat, int, error) {
	base := r.repository.GoquDBWrapper.From("boats")

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count boats: %w", err)
	}

	var rows []models.Boat
	if err := p.Apply(base).Executor().ScanStructs(&rows); err != nil {
		return nil, 0, fmt.Errorf("unable to list boats: %w", err)
	}

	return rows, int(total), nil
}

func (r *BoatRepository) Get(id int) (*models.Boat, error) {
	var boat models.Boat

	query := r.repository.GoquDBWrapper.From("boats").Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&boat)
	if err != nil {
		return nil, fmt.Errorf("unable to get boat: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &boat, nil
}

func (r *BoatRepository) Create(req models.BoatRequest) (*models.Boat, error) {
	status := req.Status
	if status == "" {
		status = "scheduled"
	}

	row := goqu.Record{
		"name":   req.Name,
		"status": status,
	}
	if req.DepartureDate != nil {
		row["departure_date"] = req.DepartureDate
	}
	if req.ArrivalDate != nil {
		row["arrival_date"] = req.ArrivalDate
	}

	query := r.repository.GoquDBWrapper.Insert("boats").Rows(row).Returning("id")

	var id int
	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to insert boat: %w", err))
	}

	return r.Get(id)
}

func (r *BoatRepository) Update(id int, changes goqu.Record) (*models.Boat, error) {
	query := r.repository.GoquDBWrapper.Update("boats").Set(changes).Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to update boat: %w", err))
	}

	return r.Get(id)
}

func (r *BoatRepository) Delete(id int) error {
	query := r.repository.GoquDBWrapper.Delete("boats").Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to delete boat: %w", err)
	}

	return nil
}

func (r *BoatRepository) DeleteMany(ids []int) ([]int, error) {
	query := r.repository.GoquDBWrapper.Delete("boats").
		Where(goqu.Ex{"id": ids}).
		Returning("id")

	var deletedIDs []int
	if err := query.Executor().ScanVals(&deletedIDs); err != nil {
		return nil, fmt.Errorf("failed to bulk delete boats: %w", err)
	}

	return deletedIDs, nil
}
