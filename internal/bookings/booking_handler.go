package bookings

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

const entityType = "booking"

var sortColumns = []string{"id", "origin_port", "destination_port", "status", "booking_date", "created_at"}

type BookingsHandler struct {
	repo  *BookingRepository
	audit *auditlog.Recorder
}

func NewHandler(repo *BookingRepository, audit *auditlog.Recorder) *BookingsHandler {
	return &BookingsHandler{repo: repo, audit: audit}
}

func (h *BookingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/bookings", security.Authorize(roles.User), h.List)
	router.GET("/bookings/:id", security.Authorize(roles.User), h.Get)
	router.POST("/bookings", security.Authorize(roles.Admin), h.Create)
	router.PATCH("/bookings/:id", security.Authorize(roles.Admin), h.Update)
	router.DELETE("/bookings/:id", security.Authorize(roles.Admin), h.Delete)
	router.POST("/bookings/bulk-delete", security.Authorize(roles.Admin), h.BulkDelete)
}

func (h *BookingsHandler) List(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := listing.Parse(c, sortColumns)

	rows, total, err := h.repo.List(params, actor.ScopeID())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Could not obtain list of bookings")
		return
	}

	response.OKWithTotal(c, http.StatusOK, rows, total)
}

func (h *BookingsHandler) Get(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	booking, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get booking")
		return
	}
	if booking == nil {
		response.Fail(c, http.StatusNotFound, "Booking not found")
		return
	}

	if scope := actor.ScopeID(); scope != nil {
		if booking.DealerID == nil || *booking.DealerID != *scope {
			response.Fail(c, http.StatusForbidden, "You are not allowed to access this booking")
			return
		}
	}

	response.OK(c, http.StatusOK, booking)
}

func (h *BookingsHandler) Create(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	booking, err := h.repo.Create(req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	h.audit.Record(actor.ID, entityType, booking.ID, models.AuditActionCreate,
		nil, auditlog.Snapshot(booking), c.ClientIP(), nil)

	response.OK(c, http.StatusCreated, booking)
}

func (h *BookingsHandler) Update(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get booking")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Booking not found")
		return
	}

	changes := goqu.Record{}
	if req.DealerID != nil {
		changes["dealer_id"] = *req.DealerID
	}
	if req.Vin != nil {
		changes["vin"] = *req.Vin
	}
	if req.ContainerID != nil {
		changes["container_id"] = *req.ContainerID
	}
	if req.OriginPort != nil {
		changes["origin_port"] = *req.OriginPort
	}
	if req.DestinationPort != nil {
		changes["destination_port"] = *req.DestinationPort
	}
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if req.BookingDate != nil {
		changes["booking_date"] = *req.BookingDate
	}

	if len(changes) == 0 {
		response.Fail(c, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.repo.Update(id, changes)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionUpdate,
		auditlog.Snapshot(prior), auditlog.Snapshot(updated), c.ClientIP(), nil)

	response.OK(c, http.StatusOK, updated)
}

func (h *BookingsHandler) Delete(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get booking")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Booking not found")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionDelete,
		auditlog.Snapshot(prior), nil, c.ClientIP(), nil)

	response.Message(c, http.StatusOK, "Booking deleted")
}

func (h *BookingsHandler) BulkDelete(c *gin.Context) {
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
		response.Fail(c, http.StatusInternalServerError, "Failed to delete bookings")
		return
	}

	response.OK(c, http.StatusOK, bulk.Result{DeletedCount: len(deletedIDs), DeletedIDs: deletedIDs})
}
