package boats

import (
	"net/http"
	"strconv"

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

const entityType = "boat"

var sortColumns = []string{"id", "name", "departure_date", "arrival_date", "status", "created_at"}

type BoatsHandler struct {
	repo  *BoatRepository
	audit *auditlog.Recorder
}

func NewHandler(repo *BoatRepository, audit *auditlog.Recorder) *BoatsHandler {
	return &BoatsHandler{repo: repo, audit: audit}
}

func (h *BoatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/boats", security.Authorize(roles.User), h.List)
	router.GET("/boats/:id", security.Authorize(roles.User), h.Get)
	router.POST("/boats", security.Authorize(roles.Admin), h.Create)
	router.PATCH("/boats/:id", security.Authorize(roles.Admin), h.Update)
	router.DELETE("/boats/:id", security.Authorize(roles.Admin), h.Delete)
	router.POST("/boats/bulk-delete", security.Authorize(roles.Admin), h.BulkDelete)
}

func (h *BoatsHandler) List(c *gin.Context) {
	params := listing.Parse(c, sortColumns)

	rows, total, err := h.repo.List(params)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Could not obtain list of boats")
		return
	}

	response.OKWithTotal(c, http.StatusOK, rows, total)
}

func (h *BoatsHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid boat ID")
		return
	}

	boat, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get boat")
		return
	}
	if boat == nil {
		response.Fail(c, http.StatusNotFound, "Boat not found")
		return
	}

	response.OK(c, http.StatusOK, boat)
}

func (h *BoatsHandler) Create(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	var req models.BoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	boat, err := h.repo.Create(req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to create boat")
		return
	}

	h.audit.Record(actor.ID, entityType, boat.ID, models.AuditActionCreate,
		nil, auditlog.Snapshot(boat), c.ClientIP(), nil)

	response.OK(c, http.StatusCreated, boat)
}

func (h *BoatsHandler) Update(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid boat ID")
		return
	}

	var req models.UpdateBoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get boat")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Boat not found")
		return
	}

	changes := goqu.Record{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.DepartureDate != nil {
		changes["departure_date"] = *req.DepartureDate
	}
	if req.ArrivalDate != nil {
		changes["arrival_date"] = *req.ArrivalDate
	}
	if req.Status != nil {
		changes["status"] = *req.Status
	}

	if len(changes) == 0 {
		response.Fail(c, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.repo.Update(id, changes)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to update boat")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionUpdate,
		auditlog.Snapshot(prior), auditlog.Snapshot(updated), c.ClientIP(), nil)

	response.OK(c, http.StatusOK, updated)
}

func (h *BoatsHandler) Delete(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid boat ID")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get boat")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Boat not found")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete boat")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionDelete,
		auditlog.Snapshot(prior), nil, c.ClientIP(), nil)

	response.Message(c, http.StatusOK, "Boat deleted")
}

func (h *BoatsHandler) BulkDelete(c *gin.Context) {
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
		response.Fail(c, http.StatusInternalServerError, "Failed to delete boats")
		return
	}

	response.OK(c, http.StatusOK, bulk.Result{DeletedCount: len(deletedIDs), DeletedIDs: deletedIDs})
}
