package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/response"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/roles"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

var sortColumns = []string{"id", "entity_type", "entity_id", "action", "user_id", "created_at"}

type AuditLogHandler struct {
	repo *QueryRepository
}

func NewHandler(repo *QueryRepository) *AuditLogHandler {
	return &AuditLogHandler{repo: repo}
}

func (h *AuditLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs", security.Authorize(roles.Admin), h.List)
}

func (h *AuditLogHandler) List(c *gin.Context) {
	params := listing.Parse(c, sortColumns)

	filter := Filter{
		EntityType: c.Query("entity_type"),
		Action:     c.Query("action"),
		Keyword:    c.Query("keyword"),
	}

	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid user_id filter")
			return
		}
		filter.UserID = &id
	}

	if raw := c.Query("from"); raw != "" {
		from, err := parseDay(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDay(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		// "to" is inclusive of the whole day
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	rows, total, err := h.repo.List(params, filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Could not obtain audit trail")
		return
	}

	response.OKWithTotal(c, http.StatusOK, rows, total)
}

func parseDay(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}
