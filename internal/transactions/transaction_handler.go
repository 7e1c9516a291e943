package transactions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/bulk"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/ledger"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/auditlog"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/response"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/roles"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/security"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

const entityType = "transaction"

var sortColumns = []string{"id", "payer", "vin", "paid_amount", "payment_type", "create_date"}

// personal_number is redacted in audit snapshots
var sensitiveFields = []string{"personal_number"}

type TransactionsHandler struct {
	repo   *TransactionRepository
	ledger *ledger.Service
	audit  *auditlog.Recorder
}

func NewHandler(repo *TransactionRepository, ledgerService *ledger.Service, audit *auditlog.Recorder) *TransactionsHandler {
	return &TransactionsHandler{repo: repo, ledger: ledgerService, audit: audit}
}

func (h *TransactionsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/transactions", security.Authorize(roles.User), h.List)
	router.GET("/transactions/:id", security.Authorize(roles.User), h.Get)
	router.POST("/transactions", security.Authorize(roles.Admin), h.Create)
	router.PATCH("/transactions/:id", security.Authorize(roles.Admin), h.Update)
	router.DELETE("/transactions/:id", security.Authorize(roles.Admin), h.Delete)
	router.POST("/transactions/bulk-delete", security.Authorize(roles.Admin), h.BulkDelete)
}

func (h *TransactionsHandler) List(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := listing.Parse(c, sortColumns)

	var payer *string
	if !actor.IsAdmin() {
		payer = &actor.Username
	}

	rows, total, err := h.repo.List(params, payer)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Could not obtain list of transactions")
		return
	}

	response.OKWithTotal(c, http.StatusOK, rows, total)
}

func (h *TransactionsHandler) Get(c *gin.Context) {
	actor, ok := security.CurrentActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	transaction, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get transaction")
		return
	}
	if transaction == nil {
		response.Fail(c, http.StatusNotFound, "Transaction not found")
		return
	}

	if !actor.IsAdmin() {
		if transaction.Payer == nil || *transaction.Payer != actor.Username {
			response.Fail(c, http.StatusForbidden, "You are not allowed to access this transaction")
			return
		}
	}

	response.OK(c, http.StatusOK, transaction)
}

// Create records the transaction and applies its ledger effects in one
// database transaction. Callers re-fetch vehicle/user state to observe
// the effects.
func (h *TransactionsHandler) Create(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	var req models.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	transaction, _, err := h.ledger.RecordTransaction(req)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidPaymentType) {
			response.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, "Failed to record transaction")
		return
	}

	h.audit.Record(actor.ID, entityType, transaction.ID, models.AuditActionCreate,
		nil, auditlog.Snapshot(transaction), c.ClientIP(), sensitiveFields)

	response.OK(c, http.StatusCreated, transaction)
}

// Update corrects the recorded row only; ledger effects applied at
// creation are never re-run or reversed here.
func (h *TransactionsHandler) Update(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.PaymentType != nil && !models.IsValidPaymentType(*req.PaymentType) {
		response.Fail(c, http.StatusBadRequest, "Invalid payment type")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get transaction")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Transaction not found")
		return
	}

	changes := goqu.Record{}
	if req.Payer != nil {
		changes["payer"] = *req.Payer
	}
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
	if req.Buyer != nil {
		changes["buyer"] = *req.Buyer
	}
	if req.PersonalNumber != nil {
		changes["personal_number"] = *req.PersonalNumber
	}
	if req.PaidAmount != nil {
		changes["paid_amount"] = *req.PaidAmount
	}
	if req.PaymentType != nil {
		changes["payment_type"] = *req.PaymentType
	}

	if len(changes) == 0 {
		response.Fail(c, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.repo.Update(id, changes)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionUpdate,
		auditlog.Snapshot(prior), auditlog.Snapshot(updated), c.ClientIP(), sensitiveFields)

	response.OK(c, http.StatusOK, updated)
}

func (h *TransactionsHandler) Delete(c *gin.Context) {
	actor, _ := security.CurrentActor(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	prior, err := h.repo.Get(id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Unable to get transaction")
		return
	}
	if prior == nil {
		response.Fail(c, http.StatusNotFound, "Transaction not found")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	h.audit.Record(actor.ID, entityType, id, models.AuditActionDelete,
		auditlog.Snapshot(prior), nil, c.ClientIP(), sensitiveFields)

	response.Message(c, http.StatusOK, "Transaction deleted")
}

func (h *TransactionsHandler) BulkDelete(c *gin.Context) {
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
		response.Fail(c, http.StatusInternalServerError, "Failed to delete transactions")
		return
	}

	response.OK(c, http.StatusOK, bulk.Result{DeletedCount: len(deletedIDs), DeletedIDs: deletedIDs})
}
