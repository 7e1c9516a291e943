package bookings

import (
	"fmt"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	custom_error "github.com/BekaChkhiro/dealer-app-sub000/pkg/errors"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type BookingRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *BookingRepository {
	return &BookingRepository{repository: r}
}

func (r *BookingRepository) List(p listing.Params, ownerID *int) ([]models.Booking, int, error) {
	base := listing.Scoped(r.repository.GoquDBWrapper.From("bookings"), "dealer_id", ownerID)

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count bookings: %w", err)
	}

	var rows []models.Booking
	if err := p.Apply(base).Executor().ScanStructs(&rows); err != nil {
		return nil, 0, fmt.Errorf("unable to list bookings: %w", err)
	}

	return rows, int(total), nil
}

func (r *BookingRepository) Get(id int) (*models.Booking, error) {
	var booking models.Booking

	query := r.repository.GoquDBWrapper.From("bookings").Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&booking)
	if err != nil {
		return nil, fmt.Errorf("unable to get booking: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &booking, nil
}

func (r *BookingRepository) Create(req models.BookingRequest) (*models.Booking, error) {
	status := req.Status
	if status == "" {
		status = "pending"
	}

	row := goqu.Record{
		"origin_port":      req.OriginPort,
		"destination_port": req.DestinationPort,
		"status":           status,
	}
	if req.DealerID != nil {
		row["dealer_id"] = req.DealerID
	}
	if req.Vin != nil {
		row["vin"] = req.Vin
	}
	if req.ContainerID != nil {
		row["container_id"] = req.ContainerID
	}
	if req.BookingDate != nil {
		row["booking_date"] = req.BookingDate
	}

	query := r.repository.GoquDBWrapper.Insert("bookings").Rows(row).Returning("id")

	var id int
	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to insert booking: %w", err))
	}

	return r.Get(id)
}

func (r *BookingRepository) Update(id int, changes goqu.Record) (*models.Booking, error) {
	query := r.repository.GoquDBWrapper.Update("bookings").Set(changes).Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to update booking: %w", err))
	}

	return r.Get(id)
}

func (r *BookingRepository) Delete(id int) error {
	query := r.repository.GoquDBWrapper.Delete("bookings").Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) DeleteMany(ids []int) ([]int, error) {
	query := r.repository.GoquDBWrapper.Delete("bookings").
		Where(goqu.Ex{"id": ids}).
		Returning("id")

	var deletedIDs []int
	if err := query.Executor().ScanVals(&deletedIDs); err != nil {
		return nil, fmt.Errorf("failed to bulk delete bookings: %w", err)
	}

	return deletedIDs, nil
}
