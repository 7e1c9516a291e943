package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/bulk"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/ledger"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/auditlog"
	custom_error "github.com/BekaChkhiro/dealer-app-sub000/pkg/errors"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/response"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/roles"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

const entityType = "user"

var sortColumns = []string{"id", "username", "fullname", "role", "balance", "debt", "created_at"}

// password_hash never reaches JSON responses, but audit snapshots are
// built before serialization, so it still has to be redacted there.
var sensitiveFields = []string{"password_hash"}

type UsersHandler struct {
	repo   *UserRepository
	ledger *ledger.Service
	audit  *auditlog.Recorder
}

func NewHandler(repo *UserRepository, ledgerService *ledger.Service, audit *auditlog.Recorder) *UsersHandler {
	return &UsersHandler{repo: repo, ledger: ledgerService, audit: audit}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", security.Authorize(roles.Admin), h.List)
	router.GET("/users/:id", security.Authorize(roles.Admin), h.Get)
	router.POST("/users", security.Authorize(roles.Admin), h.Create)
	router.PATCH("/users/:id", security.Authorize(roles.Admin), h.Update)
	router.DELETE("/users/:id", security.Authorize(roles.Admin), h.Delete)
	router.POST("/users/bulk-delete", security.Authorize(roles.Admin), h.BulkDelete)
	router.POST("/users/:id/balance-adjustment", security.Authorize(roles.Admin), h.AdjustBalance)
}

func (h *UsersHandler) List(c *gin.Context) {
	params := listing.Parse(c, sortColumns)

	rows, total, err := h.repo.List(params)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Could not obtain list of users")
		return
	}

	response.OKWithTotal(c, http.StatusOK, rows, total)
}

func (h *UsersHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get user")
		return
	}
	if user == nil {
		response.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	response.OK(c, http.StatusOK, user)
}

func (h *UsersHandler) Create(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !roles.Role(req.Role).IsValid() {
		response.Fail(c, http.StatusBadRequest, "Invalid role")
		return
	}

	user, err := h.repo.Create(req)
	if err != nil {
		var unique *custom_error.UniqueViolationError
		if errors.As(err, &unique) {
			response.Fail(c, http.StatusConflict, "Username is already taken")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	h.audit.Record(actor.ID, entityType, user.ID, models.AuditActionCreate,
		nil, auditlog.Snapshot(user), c.ClientIP(), sensitiveFields)

	response.OK(c, http.StatusCreated, user)
}

func (h *UsersHandler) Update(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get user")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	changes := models.UserChanges{Fullname: req.Fullname}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to update user")
			return
		}
		changes.PasswordHash = &hash
	}
	if req.Role != nil {
		if !roles.Role(*req.Role).IsValid() {
			response.Fail(c, http.StatusBadRequest, "Invalid role")
			return
		}
		changes.Role = req.Role
	}

	if !changes.HasChanges() {
		response.Fail(c, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.repo.Update(id, changes)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionUpdate,
		auditlog.Snapshot(prior), auditlog.Snapshot(updated), c.ClientIP(), sensitiveFields)

	response.OK(c, http.StatusOK, updated)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if actor.ID == id {
		response.Fail(c, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get user")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		var fk *custom_error.ForeignKeyViolationError
		if errors.As(err, &fk) {
			response.Fail(c, http.StatusConflict, "User still owns vehicles or transactions")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionDelete,
		auditlog.Snapshot(prior), nil, c.ClientIP(), sensitiveFields)

	response.Message(c, http.StatusOK, "User deleted")
}

func (h *UsersHandler) BulkDelete(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	var req bulk.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := bulk.Validate(req.IDs); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	for _, id := range req.IDs {
		if id == actor.ID {
			response.Fail(c, http.StatusBadRequest, "You cannot delete your own account")
			return
		}
	}

	deletedIDs, err := h.repo.DeleteMany(req.IDs)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete users")
		return
	}

	response.OK(c, http.StatusOK, bulk.Result{DeletedCount: len(deletedIDs), DeletedIDs: deletedIDs})
}

func (h *UsersHandler) AdjustBalance(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req models.BalanceAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get user")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	snapshot, err := h.ledger.AdjustBalance(id, req.Amount, req.Type, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrInvalidAdjustmentType):
			response.Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ledger.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "User not found")
		default:
			response.Fail(c, http.StatusInternalServerError, "Failed to adjust balance")
		}
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionUpdate,
		map[string]interface{}{"balance": prior.Balance, "debt": prior.Debt},
		map[string]interface{}{"balance": snapshot.Balance, "debt": snapshot.Debt, "type": req.Type, "amount": req.Amount},
		c.ClientIP(), nil)

	response.OK(c, http.StatusOK, snapshot)
}
