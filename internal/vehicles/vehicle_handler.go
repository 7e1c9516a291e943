package vehicles

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/assets"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/bulk"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/auditlog"
	custom_error "github.com/BekaChkhiro/dealer-app-sub000/pkg/errors"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/response"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/roles"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/security"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

const entityType = "vehicle"

var sortColumns = []string{"id", "vin", "mark", "model", "year", "total_price", "debt_amount", "payed_amount", "created_at"}

type VehiclesHandler struct {
	repo     *VehicleRepository
	audit    *auditlog.Recorder
	imageDir *assets.Store
}

func NewHandler(repo *VehicleRepository, audit *auditlog.Recorder, imageDir *assets.Store) *VehiclesHandler {
	return &VehiclesHandler{repo: repo, audit: audit, imageDir: imageDir}
}

func (h *VehiclesHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/vehicles", security.Authorize(roles.User), h.List)
	router.GET("/vehicles/:id", security.Authorize(roles.User), h.Get)
	router.POST("/vehicles", security.Authorize(roles.Admin), h.Create)
	router.PATCH("/vehicles/:id", security.Authorize(roles.Admin), h.Update)
	router.DELETE("/vehicles/:id", security.Authorize(roles.Admin), h.Delete)
	router.POST("/vehicles/bulk-delete", security.Authorize(roles.Admin), h.BulkDelete)
}

func (h *VehiclesHandler) List(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := listing.Parse(c, sortColumns)

	rows, total, err := h.repo.List(params, actor.ScopeID())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Could not obtain list of vehicles")
		return
	}

	response.OKWithTotal(c, http.StatusOK, rows, total)
}

func (h *VehiclesHandler) Get(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get vehicle")
		return
	}
	if vehicle == nil {
		response.Fail(c, http.StatusNotFound, "Vehicle not found")
		return
	}

	// a non-admin gets forbidden for someone else's row, not a
	// fabricated not-found
	if scope := actor.ScopeID(); scope != nil {
		if vehicle.DealerID == nil || *vehicle.DealerID != *scope {
			response.Fail(c, http.StatusForbidden, "You are not allowed to access this vehicle")
			return
		}
	}

	response.OK(c, http.StatusOK, vehicle)
}

func (h *VehiclesHandler) Create(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	var req models.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	vehicle, err := h.repo.Create(req)
	if err != nil {
		var unique *custom_error.UniqueViolationError
		if errors.As(err, &unique) {
			response.Fail(c, http.StatusConflict, "Vehicle with this VIN already exists")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	h.audit.Record(actor.ID, entityType, vehicle.ID, models.AuditActionCreate,
		nil, auditlog.Snapshot(vehicle), c.ClientIP(), nil)

	response.OK(c, http.StatusCreated, vehicle)
}

func (h *VehiclesHandler) Update(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	var req models.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get vehicle")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Vehicle not found")
		return
	}

	changes := goqu.Record{}
	if req.Vin != nil {
		changes["vin"] = *req.Vin
	}
	if req.Mark != nil {
		changes["mark"] = *req.Mark
	}
	if req.Model != nil {
		changes["model"] = *req.Model
	}
	if req.Year != nil {
		changes["year"] = *req.Year
	}
	if req.DealerID != nil {
		changes["dealer_id"] = *req.DealerID
	}
	if req.TotalPrice != nil {
		changes["total_price"] = *req.TotalPrice
	}
	if req.ImagePath != nil {
		changes["image_path"] = *req.ImagePath
	}

	if len(changes) == 0 {
		response.Fail(c, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.repo.Update(id, changes)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionUpdate,
		auditlog.Snapshot(prior), auditlog.Snapshot(updated), c.ClientIP(), nil)

	response.OK(c, http.StatusOK, updated)
}

func (h *VehiclesHandler) Delete(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get vehicle")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Vehicle not found")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionDelete,
		auditlog.Snapshot(prior), nil, c.ClientIP(), nil)

	if prior.ImagePath != nil {
		h.imageDir.RemoveAsync(*prior.ImagePath)
	}

	response.Message(c, http.StatusOK, "Vehicle deleted")
}

func (h *VehiclesHandler) BulkDelete(c *gin.Context) {
	var req bulk.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := bulk.Validate(req.IDs); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := h.repo.DeleteMany(req.IDs)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete vehicles")
		return
	}

	result := bulk.Result{DeletedCount: len(deleted)}
	for _, vehicle := range deleted {
		result.DeletedIDs = append(result.DeletedIDs, vehicle.ID)
		if vehicle.ImagePath != nil {
			h.imageDir.RemoveAsync(*vehicle.ImagePath)
		}
	}

	response.OK(c, http.StatusOK, result)
}
