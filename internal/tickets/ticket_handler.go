package tickets

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/bulk"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/auditlog"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/response"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/roles"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/security"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

const entityType = "ticket"

var sortColumns = []string{"id", "subject", "status", "priority", "created_at", "updated_at"}

// TicketStore is what the handler needs from the persistence layer.
type TicketStore interface {
	List(p listing.Params, ownerID *int) ([]models.Ticket, int, error)
	Get(id int) (*models.Ticket, error)
	Create(userID int, req models.TicketRequest) (*models.Ticket, error)
	Update(id int, changes goqu.Record) (*models.Ticket, error)
	Delete(id int) error
	DeleteMany(ids []int) ([]int, error)
}

type TicketsHandler struct {
	repo  TicketStore
	audit *auditlog.Recorder
}

func NewHandler(repo TicketStore, audit *auditlog.Recorder) *TicketsHandler {
	return &TicketsHandler{repo: repo, audit: audit}
}

// Tickets are the one entity any authenticated user may create and
// partially update; destructive operations stay admin-only.
func (h *TicketsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tickets", security.Authorize(roles.User), h.List)
	router.GET("/tickets/:id", security.Authorize(roles.User), h.Get)
	router.POST("/tickets", security.Authorize(roles.User), h.Create)
	router.PATCH("/tickets/:id", security.Authorize(roles.User), h.Update)
	router.DELETE("/tickets/:id", security.Authorize(roles.Admin), h.Delete)
	router.POST("/tickets/bulk-delete", security.Authorize(roles.Admin), h.BulkDelete)
}

func (h *TicketsHandler) List(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := listing.Parse(c, sortColumns)

	rows, total, err := h.repo.List(params, actor.ScopeID())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Could not obtain list of tickets")
		return
	}

	response.OKWithTotal(c, http.StatusOK, rows, total)
}

func (h *TicketsHandler) Get(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	ticket, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get ticket")
		return
	}
	if ticket == nil {
		response.Fail(c, http.StatusNotFound, "Ticket not found")
		return
	}

	if !actor.IsAdmin() && ticket.UserID != actor.ID {
		response.Fail(c, http.StatusForbidden, "You are not allowed to access this ticket")
		return
	}

	response.OK(c, http.StatusOK, ticket)
}

func (h *TicketsHandler) Create(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Priority != "" && !models.IsValidTicketPriority(req.Priority) {
		response.Fail(c, http.StatusBadRequest, "Invalid ticket priority")
		return
	}

	ticket, err := h.repo.Create(actor.ID, req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to create ticket")
		return
	}

	h.audit.Record(actor.ID, entityType, ticket.ID, models.AuditActionCreate,
		nil, auditlog.Snapshot(ticket), c.ClientIP(), nil)

	response.OK(c, http.StatusCreated, ticket)
}

func (h *TicketsHandler) Update(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var req models.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get ticket")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Ticket not found")
		return
	}

	if !actor.IsAdmin() && prior.UserID != actor.ID {
		response.Fail(c, http.StatusForbidden, "You are not allowed to access this ticket")
		return
	}

	changes, err := BuildChanges(prior, req, actor.IsAdmin(), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, ErrRestrictedFields):
			response.Fail(c, http.StatusForbidden, err.Error())
		default:
			response.Fail(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	updated, err := h.repo.Update(id, changes)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to update ticket")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionUpdate,
		auditlog.Snapshot(prior), auditlog.Snapshot(updated), c.ClientIP(), nil)

	response.OK(c, http.StatusOK, updated)
}

func (h *TicketsHandler) Delete(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get ticket")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Ticket not found")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete ticket")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionDelete,
		auditlog.Snapshot(prior), nil, c.ClientIP(), nil)

	response.Message(c, http.StatusOK, "Ticket deleted")
}

func (h *TicketsHandler) BulkDelete(c *gin.Context) {
	var req bulk.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := bulk.Validate(req.IDs); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	deletedIDs, err := h.repo.DeleteMany(req.IDs)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete tickets")
		return
	}

	response.OK(c, http.StatusOK, bulk.Result{DeletedCount: len(deletedIDs), DeletedIDs: deletedIDs})
}
