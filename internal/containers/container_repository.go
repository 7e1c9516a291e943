package containers

import (
	"fmt"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	custom_error "github.com/BekaChkhiro/dealer-app-sub000/pkg/errors"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ContainerRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ContainerRepository {
	return &ContainerRepository{repository: r}
}

func (r *ContainerRepository) List(p listing.Params, ownerID *int) ([]models.Container, int, error) {
	base := listing.Scoped(r.repository.GoquDBWrapper.From("containers"), "dealer_id", ownerID)

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count containers: %w", err)
	}

	var rows []models.Container
	if err := p.Apply(base).Executor().ScanStructs(&rows); err != nil {
		return nil, 0, fmt.Errorf("unable to list containers: %w", err)
	}

	return rows, int(total), nil
}

func (r *ContainerRepository) Get(id int) (*models.Container, error) {
	var container models.Container

	query := r.repository.GoquDBWrapper.From("containers").Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&container)
	if err != nil {
		return nil, fmt.Errorf("unable to get container: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &container, nil
}

func (r *ContainerRepository) Create(req models.ContainerRequest) (*models.Container, error) {
	status := req.Status
	if status == "" {
		status = "loading"
	}

	row := goqu.Record{
		"container_number": req.ContainerNumber,
		"status":           status,
	}
	if req.BoatID != nil {
		row["boat_id"] = req.BoatID
	}
	if req.DealerID != nil {
		row["dealer_id"] = req.DealerID
	}
	if req.LoadingDate != nil {
		row["loading_date"] = req.LoadingDate
	}

	query := r.repository.GoquDBWrapper.Insert("containers").Rows(row).Returning("id")

	var id int
	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to insert container: %w", err))
	}

	return r.Get(id)
}

func (r *ContainerRepository) Update(id int, changes goqu.Record) (*models.Container, error) {
	query := r.repository.GoquDBWrapper.Update("containers").Set(changes).Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to update container: %w", err))
	}

	return r.Get(id)
}

func (r *ContainerRepository) Delete(id int) error {
	query := r.repository.GoquDBWrapper.Delete("containers").Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to delete container: %w", err)
	}

	return nil
}

func (r *ContainerRepository) DeleteMany(ids []int) ([]int, error) {
	query := r.repository.GoquDBWrapper.Delete("containers").
		Where(goqu.Ex{"id": ids}).
		Returning("id")

	var deletedIDs []int
	if err := query.Executor().ScanVals(&deletedIDs); err != nil {
		return nil, fmt.Errorf("failed to bulk delete containers: %w", err)
	}

	return deletedIDs, nil
}
