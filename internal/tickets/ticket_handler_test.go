package tickets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/listing"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/auditlog"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockTicketStore struct {
	mock.Mock
}

func (m *MockTicketStore) List(p listing.Params, ownerID *int) ([]models.Ticket, int, error) {
	args := m.Called(p, ownerID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Ticket), args.Int(1), args.Error(2)
}

func (m *MockTicketStore) Get(id int) (*models.Ticket, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketStore) Create(userID int, req models.TicketRequest) (*models.Ticket, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketStore) Update(id int, changes goqu.Record) (*models.Ticket, error) {
	args := m.Called(id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketStore) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockTicketStore) DeleteMany(ids []int) ([]int, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

type nopAuditStore struct{}

func (nopAuditStore) PersistEntry(models.AuditLog) error { return nil }

func newTestHandler(store *MockTicketStore) *TicketsHandler {
	recorder := auditlog.NewRecorder(nopAuditStore{}, zap.NewNop())
	return NewHandler(store, recorder)
}

func setupTestContext(userID int, role string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", userID)
	c.Set("role", role)
	c.Set("username", "tester")
	return c, w
}

func TestCreateTicketUsesCallerIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := new(MockTicketStore)
	handler := newTestHandler(store)

	created := &models.Ticket{
		ID:       1,
		UserID:   7,
		Subject:  "Damaged bumper on arrival",
		Message:  "The car arrived with a damaged front bumper.",
		Status:   models.TicketStatusOpen,
		Priority: models.TicketPriorityMedium,
	}
	store.On("Create", 7, mock.Anything).Return(created, nil)

	c, w := setupTestContext(7, "user")
	body, _ := json.Marshal(models.TicketRequest{
		Subject: "Damaged bumper on arrival",
		Message: "The car arrived with a damaged front bumper.",
	})
	c.Request = httptest.NewRequest("POST", "/tickets", bytes.NewBuffer(body))

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	store.AssertExpectations(t)
}

func TestUpdateTicketNonOwnerForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := new(MockTicketStore)
	handler := newTestHandler(store)

	store.On("Get", 5).Return(&models.Ticket{ID: 5, UserID: 99, Status: models.TicketStatusOpen}, nil)

	c, w := setupTestContext(7, "user")
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	subject := "hijack"
	body, _ := json.Marshal(models.UpdateTicketRequest{Subject: &subject})
	c.Request = httptest.NewRequest("PATCH", "/tickets/5", bytes.NewBuffer(body))

	handler.Update(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateTicketStatusRequiresAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := new(MockTicketStore)
	handler := newTestHandler(store)

	store.On("Get", 5).Return(&models.Ticket{ID: 5, UserID: 7, Status: models.TicketStatusOpen}, nil)

	c, w := setupTestContext(7, "user")
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	status := models.TicketStatusResolved
	body, _ := json.Marshal(models.UpdateTicketRequest{Status: &status})
	c.Request = httptest.NewRequest("PATCH", "/tickets/5", bytes.NewBuffer(body))

	handler.Update(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateTicketOwnerEditsSubject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := new(MockTicketStore)
	handler := newTestHandler(store)

	prior := &models.Ticket{ID: 5, UserID: 7, Subject: "old", Status: models.TicketStatusOpen, CreatedAt: time.Now()}
	updated := &models.Ticket{ID: 5, UserID: 7, Subject: "new", Status: models.TicketStatusOpen, CreatedAt: prior.CreatedAt}
	store.On("Get", 5).Return(prior, nil)
	store.On("Update", 5, mock.Anything).Return(updated, nil)

	c, w := setupTestContext(7, "user")
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	subject := "new"
	body, _ := json.Marshal(models.UpdateTicketRequest{Subject: &subject})
	c.Request = httptest.NewRequest("PATCH", "/tickets/5", bytes.NewBuffer(body))

	handler.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestUpdateTicketNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := new(MockTicketStore)
	handler := newTestHandler(store)

	store.On("Get", 404).Return(nil, nil)

	c, w := setupTestContext(1, "admin")
	c.Params = gin.Params{{Key: "id", Value: "404"}}
	subject := "anything"
	body, _ := json.Marshal(models.UpdateTicketRequest{Subject: &subject})
	c.Request = httptest.NewRequest("PATCH", "/tickets/404", bytes.NewBuffer(body))

	handler.Update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
