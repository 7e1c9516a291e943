package tickets

import (
	"errors"
	"time"

	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var (
	ErrNoChanges        = errors.New("no fields to update")
	ErrInvalidStatus    = errors.New("invalid ticket status")
	ErrInvalidPriority  = errors.New("invalid ticket priority")
	ErrRestrictedFields = errors.New("only admins may change a ticket's status or priority")
)

// BuildChanges turns a sparse ticket patch into the column set to
// write. Non-admin callers may change subject and message only.
// Moving the status to resolved from any other status stamps
// resolved_at exactly once; a resolved->resolved update leaves the
// stamp untouched.
func BuildChanges(prior *models.Ticket, req models.UpdateTicketRequest, isAdmin bool, now time.Time) (goqu.Record, error) {
	if !isAdmin && (req.Status != nil || req.Priority != nil) {
		return nil, ErrRestrictedFields
	}

	changes := goqu.Record{}

	if req.Subject != nil {
		changes["subject"] = *req.Subject
	}
	if req.Message != nil {
		changes["message"] = *req.Message
	}

	if req.Status != nil {
		if !models.IsValidTicketStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		changes["status"] = *req.Status

		if *req.Status == models.TicketStatusResolved && prior.Status != models.TicketStatusResolved {
			changes["resolved_at"] = now
		}
	}

	if req.Priority != nil {
		if !models.IsValidTicketPriority(*req.Priority) {
			return nil, ErrInvalidPriority
		}
		changes["priority"] = *req.Priority
	}

	if len(changes) == 0 {
		return nil, ErrNoChanges
	}

	changes["updated_at"] = now
	return changes, nil
}
