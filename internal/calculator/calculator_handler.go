package calculator

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

const entityType = "calculator_entry"

var sortColumns = []string{"id", "auction", "city", "port", "price", "created_at"}

type CalculatorHandler struct {
	repo  *CalculatorRepository
	audit *auditlog.Recorder
}

func NewHandler(repo *CalculatorRepository, audit *auditlog.Recorder) *CalculatorHandler {
	return &CalculatorHandler{repo: repo, audit: audit}
}

func (h *CalculatorHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/calculator", security.Authorize(roles.User), h.List)
	router.GET("/calculator/:id", security.Authorize(roles.User), h.Get)
	router.POST("/calculator", security.Authorize(roles.Admin), h.Create)
	router.PATCH("/calculator/:id", security.Authorize(roles.Admin), h.Update)
	router.DELETE("/calculator/:id", security.Authorize(roles.Admin), h.Delete)
	router.POST("/calculator/bulk-delete", security.Authorize(roles.Admin), h.BulkDelete)
}

func (h *CalculatorHandler) List(c *gin.Context) {
	params := listing.Parse(c, sortColumns)

	rows, total, err := h.repo.List(params)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Could not obtain list of calculator entries")
		return
	}

	response.OKWithTotal(c, http.StatusOK, rows, total)
}

func (h *CalculatorHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	entry, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get calculator entry")
		return
	}
	if entry == nil {
		response.Fail(c, http.StatusNotFound, "Calculator entry not found")
		return
	}

	response.OK(c, http.StatusOK, entry)
}

func (h *CalculatorHandler) Create(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	var req models.CalculatorEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	entry, err := h.repo.Create(req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to create calculator entry")
		return
	}

	h.audit.Record(actor.ID, entityType, entry.ID, models.AuditActionCreate,
		nil, auditlog.Snapshot(entry), c.ClientIP(), nil)

	response.OK(c, http.StatusCreated, entry)
}

func (h *CalculatorHandler) Update(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	var req models.UpdateCalculatorEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get calculator entry")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Calculator entry not found")
		return
	}

	changes := goqu.Record{}
	if req.Auction != nil {
		changes["auction"] = *req.Auction
	}
	if req.City != nil {
		changes["city"] = *req.City
	}
	if req.Port != nil {
		changes["port"] = *req.Port
	}
	if req.Price != nil {
		changes["price"] = *req.Price
	}

	if len(changes) == 0 {
		response.Fail(c, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.repo.Update(id, changes)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to update calculator entry")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionUpdate,
		auditlog.Snapshot(prior), auditlog.Snapshot(updated), c.ClientIP(), nil)

	response.OK(c, http.StatusOK, updated)
}

func (h *CalculatorHandler) Delete(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get calculator entry")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Calculator entry not found")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete calculator entry")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionDelete,
		auditlog.Snapshot(prior), nil, c.ClientIP(), nil)

	response.Message(c, http.StatusOK, "Calculator entry deleted")
}

func (h *CalculatorHandler) BulkDelete(c *gin.Context) {
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
		response.Fail(c, http.StatusInternalServerError, "Failed to delete calculator entries")
		return
	}

	response.OK(c, http.StatusOK, bulk.Result{DeletedCount: len(deletedIDs), DeletedIDs: deletedIDs})
}
