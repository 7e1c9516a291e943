package containers

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

const entityType = "container"

var sortColumns = []string{"id", "container_number", "status", "loading_date", "created_at"}

type ContainersHandler struct {
	repo  *ContainerRepository
	audit *auditlog.Recorder
}

func NewHandler(repo *ContainerRepository, audit *auditlog.Recorder) *ContainersHandler {
	return &ContainersHandler{repo: repo, audit: audit}
}

func (h *ContainersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/containers", security.Authorize(roles.User), h.List)
	router.GET("/containers/:id", security.Authorize(roles.User), h.Get)
	router.POST("/containers", security.Authorize(roles.Admin), h.Create)
	router.PATCH("/containers/:id", security.Authorize(roles.Admin), h.Update)
	router.DELETE("/containers/:id", security.Authorize(roles.Admin), h.Delete)
	router.POST("/containers/bulk-delete", security.Authorize(roles.Admin), h.BulkDelete)
}

func (h *ContainersHandler) List(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := listing.Parse(c, sortColumns)

	rows, total, err := h.repo.List(params, actor.ScopeID())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Could not obtain list of containers")
		return
	}

	response.OKWithTotal(c, http.StatusOK, rows, total)
}

func (h *ContainersHandler) Get(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid container ID")
		return
	}

	container, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get container")
		return
	}
	if container == nil {
		response.Fail(c, http.StatusNotFound, "Container not found")
		return
	}

	if scope := actor.ScopeID(); scope != nil {
		if container.DealerID == nil || *container.DealerID != *scope {
			response.Fail(c, http.StatusForbidden, "You are not allowed to access this container")
			return
		}
	}

	response.OK(c, http.StatusOK, container)
}

func (h *ContainersHandler) Create(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	var req models.ContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	container, err := h.repo.Create(req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to create container")
		return
	}

	h.audit.Record(actor.ID, entityType, container.ID, models.AuditActionCreate,
		nil, auditlog.Snapshot(container), c.ClientIP(), nil)

	response.OK(c, http.StatusCreated, container)
}

func (h *ContainersHandler) Update(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid container ID")
		return
	}

	var req models.UpdateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get container")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Container not found")
		return
	}

	changes := goqu.Record{}
	if req.ContainerNumber != nil {
		changes["container_number"] = *req.ContainerNumber
	}
	if req.BoatID != nil {
		changes["boat_id"] = *req.BoatID
	}
	if req.DealerID != nil {
		changes["dealer_id"] = *req.DealerID
	}
	if req.LoadingDate != nil {
		changes["loading_date"] = *req.LoadingDate
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
		response.Fail(c, http.StatusInternalServerError, "Failed to update container")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionUpdate,
		auditlog.Snapshot(prior), auditlog.Snapshot(updated), c.ClientIP(), nil)

	response.OK(c, http.StatusOK, updated)
}

func (h *ContainersHandler) Delete(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid container ID")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get container")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Container not found")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete container")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionDelete,
		auditlog.Snapshot(prior), nil, c.ClientIP(), nil)

	response.Message(c, http.StatusOK, "Container deleted")
}

func (h *ContainersHandler) BulkDelete(c *gin.Context) {
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
		response.Fail(c, http.StatusInternalServerError, "Failed to delete containers")
		return
	}

	response.OK(c, http.StatusOK, bulk.Result{DeletedCount: len(deletedIDs), DeletedIDs: deletedIDs})
}
