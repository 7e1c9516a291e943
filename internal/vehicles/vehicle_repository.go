package vehicles

import (
	"fmt"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	custom_error "github.com/BekaChkhiro/dealer-app-sub000/pkg/errors"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
)

type VehicleRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *VehicleRepository {
	return &VehicleRepository{repository: r}
}

func (r *VehicleRepository) List(p listing.Params, ownerID *int) ([]models.Vehicle, int, error) {
	base := listing.Scoped(r.repository.GoquDBWrapper.From("vehicles"), "dealer_id", ownerID)

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count vehicles: %w", err)
	}

	var rows []models.Vehicle
	if err := p.Apply(base).Executor().ScanStructs(&rows); err != nil {
		return nil, 0, fmt.Errorf("unable to list vehicles: %w", err)
	}

	return rows, int(total), nil
}

func (r *VehicleRepository) Get(id int) (*models.Vehicle, error) {
	var vehicle models.Vehicle

	query := r.repository.GoquDBWrapper.From("vehicles").Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&vehicle)
	if err != nil {
		return nil, fmt.Errorf("unable to get vehicle: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &vehicle, nil
}

func (r *VehicleRepository) Create(req models.VehicleRequest) (*models.Vehicle, error) {
	totalPrice := decimal.Zero
	if req.TotalPrice != nil {
		totalPrice = *req.TotalPrice
	}

	row := goqu.Record{
		"vin":         req.Vin,
		"mark":        req.Mark,
		"model":       req.Model,
		"year":        req.Year,
		"total_price": totalPrice,
		// a new vehicle's full price is outstanding debt
		"debt_amount":  totalPrice,
		"payed_amount": decimal.Zero,
	}
	if req.DealerID != nil {
		row["dealer_id"] = req.DealerID
	}
	if req.ImagePath != nil {
		row["image_path"] = req.ImagePath
	}

	query := r.repository.GoquDBWrapper.Insert("vehicles").Rows(row).Returning("id")

	var id int
	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to insert vehicle: %w", err))
	}

	return r.Get(id)
}

func (r *VehicleRepository) Update(id int, changes goqu.Record) (*models.Vehicle, error) {
	query := r.repository.GoquDBWrapper.Update("vehicles").Set(changes).Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to update vehicle: %w", err))
	}

	return r.Get(id)
}

func (r *VehicleRepository) Delete(id int) error {
	query := r.repository.GoquDBWrapper.Delete("vehicles").Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	return nil
}

// DeleteMany removes all matching rows in one statement and returns
// the deleted rows so image cleanup can run per row.
func (r *VehicleRepository) DeleteMany(ids []int) ([]models.Vehicle, error) {
	query := r.repository.GoquDBWrapper.Delete("vehicles").
		Where(goqu.Ex{"id": ids}).
		Returning("id", "vin", "image_path")

	var deleted []models.Vehicle
	if err := query.Executor().ScanStructs(&deleted); err != nil {
		return nil, fmt.Errorf("failed to bulk delete vehicles: %w", err)
	}

	return deleted, nil
}
