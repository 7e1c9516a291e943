package auditlog

import (
	"fmt"
	"time"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// Filter narrows the audit trail read. Zero values mean "no filter".
type Filter struct {
	EntityType string
	Action     string
	UserID     *int
	From       *time.Time
	To         *time.Time
	Keyword    string
}

func (f Filter) conditions() []goqu.Expression {
	var conds []goqu.Expression
	if f.EntityType != "" {
		conds = append(conds, goqu.Ex{"audit_logs.entity_type": f.EntityType})
	}
	if f.Action != "" {
		conds = append(conds, goqu.Ex{"audit_logs.action": f.Action})
	}
	if f.UserID != nil {
		conds = append(conds, goqu.Ex{"audit_logs.user_id": *f.UserID})
	}
	if f.From != nil {
		conds = append(conds, goqu.I("audit_logs.created_at").Gte(*f.From))
	}
	if f.To != nil {
		conds = append(conds, goqu.I("audit_logs.created_at").Lte(*f.To))
	}
	if f.Keyword != "" {
		pattern := "%" + f.Keyword + "%"
		conds = append(conds, goqu.Or(
			goqu.L("audit_logs.old_values::text ILIKE ?", pattern),
			goqu.L("audit_logs.new_values::text ILIKE ?", pattern),
		))
	}
	return conds
}

type QueryRepository struct {
	repository *repository.Repository
}

func NewQueryRepository(r *repository.Repository) *QueryRepository {
	return &QueryRepository{repository: r}
}

func (r *QueryRepository) List(p listing.Params, f Filter) ([]models.AuditLogView, int, error) {
	base := r.repository.GoquDBWrapper.From("audit_logs")
	if conds := f.conditions(); len(conds) > 0 {
		base = base.Where(conds...)
	}

	var total int64
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count audit logs: %w", err)
	}

	query := base.
		LeftJoin(
			goqu.T("users"),
			goqu.On(goqu.Ex{"audit_logs.user_id": goqu.I("users.id")}),
		).
		Select(
			goqu.I("audit_logs.id").As("id"),
			goqu.I("audit_logs.user_id").As("user_id"),
			goqu.I("audit_logs.entity_type").As("entity_type"),
			goqu.I("audit_logs.entity_id").As("entity_id"),
			goqu.I("audit_logs.action").As("action"),
			goqu.I("audit_logs.old_values").As("old_values"),
			goqu.I("audit_logs.new_values").As("new_values"),
			goqu.I("audit_logs.ip_address").As("ip_address"),
			goqu.I("audit_logs.created_at").As("created_at"),
			goqu.I("users.username").As("actor_username"),
		)

	// sort column is validated upstream; table-qualify it so the join
	// cannot make it ambiguous
	sortCol := goqu.I("audit_logs." + p.SortBy)
	if p.Asc {
		query = query.Order(sortCol.Asc())
	} else {
		query = query.Order(sortCol.Desc())
	}
	query = query.Limit(uint(p.Limit)).Offset(p.Offset())

	var rows []models.AuditLogView
	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, 0, fmt.Errorf("unable to list audit logs: %w", err)
	}

	return rows, int(total), nil
}
