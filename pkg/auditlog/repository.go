package auditlog

import (
	"fmt"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type AuditLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}

func (r *AuditLogRepository) PersistEntry(entry models.AuditLog) error {
	row := goqu.Record{
		"user_id":     entry.UserID,
		"entity_type": entry.EntityType,
		"entity_id":   entry.EntityID,
		"action":      entry.Action,
		"ip_address":  entry.IPAddress,
	}

	// nil snapshots persist as NULL, per the CREATE/DELETE rule
	if entry.OldValues != nil {
		row["old_values"] = []byte(entry.OldValues)
	} else {
		row["old_values"] = nil
	}
	if entry.NewValues != nil {
		row["new_values"] = []byte(entry.NewValues)
	} else {
		row["new_values"] = nil
	}

	query := r.repository.GoquDBWrapper.Insert("audit_logs").Rows(row)

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}
