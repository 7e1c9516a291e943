package tickets

import (
	"fmt"
	"time"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	custom_error "github.com/BekaChkhiro/dealer-app-sub000/pkg/errors"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type TicketRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *TicketRepository {
	return &TicketRepository{repository: r}
}

func (r *TicketRepository) List(p listing.Params, ownerID *int) ([]models.Ticket, int, error) {
	base := listing.Scoped(r.repository.GoquDBWrapper.From("tickets"), "user_id", ownerID)

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count tickets: %w", err)
	}

	var rows []models.Ticket
	if err := p.Apply(base).Executor().ScanStructs(&rows); err != nil {
		return nil, 0, fmt.Errorf("unable to list tickets: %w", err)
	}

	return rows, int(total), nil
}

func (r *TicketRepository) Get(id int) (*models.Ticket, error) {
	var ticket models.Ticket

	query := r.repository.GoquDBWrapper.From("tickets").Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&ticket)
	if err != nil {
		return nil, fmt.Errorf("unable to get ticket: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &ticket, nil
}

func (r *TicketRepository) Create(userID int, req models.TicketRequest) (*models.Ticket, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.TicketPriorityMedium
	}

	now := time.Now()
	row := goqu.Record{
		"user_id":    userID,
		"subject":    req.Subject,
		"message":    req.Message,
		"status":     models.TicketStatusOpen,
		"priority":   priority,
		"created_at": now,
		"updated_at": now,
	}

	query := r.repository.GoquDBWrapper.Insert("tickets").Rows(row).Returning("id")

	var id int
	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to insert ticket: %w", err))
	}

	return r.Get(id)
}

func (r *TicketRepository) Update(id int, changes goqu.Record) (*models.Ticket, error) {
	query := r.repository.GoquDBWrapper.Update("tickets").Set(changes).Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.Classify(fmt.Errorf("failed to update ticket: %w", err))
	}

	return r.Get(id)
}

func (r *TicketRepository) Delete(id int) error {
	query := r.repository.GoquDBWrapper.Delete("tickets").Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	return nil
}

func (r *TicketRepository) DeleteMany(ids []int) ([]int, error) {
	query := r.repository.GoquDBWrapper.Delete("tickets").
		Where(goqu.Ex{"id": ids}).
		Returning("id")

	var deletedIDs []int
	if err := query.Executor().ScanVals(&deletedIDs); err != nil {
		return nil, fmt.Errorf("failed to bulk delete tickets: %w", err)
	}

	return deletedIDs, nil
}
