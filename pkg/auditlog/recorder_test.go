package auditlog

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type captureStore struct {
	entries chan models.AuditLog
	err     error
}

func newCaptureStore() *captureStore {
	return &captureStore{entries: make(chan models.AuditLog, 1)}
}

func (s *captureStore) PersistEntry(entry models.AuditLog) error {
	s.entries <- entry
	return s.err
}

func (s *captureStore) waitForEntry(t *testing.T) models.AuditLog {
	t.Helper()
	select {
	case entry := <-s.entries:
		return entry
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry was never persisted")
		return models.AuditLog{}
	}
}

func TestRecordRedactsSensitiveFieldsInBothSnapshots(t *testing.T) {
	store := newCaptureStore()
	recorder := NewRecorder(store, zap.NewNop())

	oldValues := map[string]interface{}{
		"username":        "dealer1",
		"personal_number": "01012345678",
	}
	newValues := map[string]interface{}{
		"username":        "dealer1",
		"personal_number": "98765432100",
	}

	recorder.Record(7, "transaction", 42, models.AuditActionUpdate, oldValues, newValues, "10.0.0.1", []string{"personal_number"})

	entry := store.waitForEntry(t)

	var oldSnapshot, newSnapshot map[string]interface{}
	assert.NoError(t, json.Unmarshal(entry.OldValues, &oldSnapshot))
	assert.NoError(t, json.Unmarshal(entry.NewValues, &newSnapshot))

	assert.Equal(t, RedactionSentinel, oldSnapshot["personal_number"])
	assert.Equal(t, RedactionSentinel, newSnapshot["personal_number"])
	assert.Equal(t, "dealer1", oldSnapshot["username"])
	assert.NotContains(t, string(entry.OldValues), "01012345678")
	assert.NotContains(t, string(entry.NewValues), "98765432100")
}

func TestRecordDoesNotMutateCallerSnapshot(t *testing.T) {
	store := newCaptureStore()
	recorder := NewRecorder(store, zap.NewNop())

	newValues := map[string]interface{}{"password_hash": "secret-hash"}

	recorder.Record(1, "user", 3, models.AuditActionCreate, nil, newValues, "", []string{"password_hash"})
	store.waitForEntry(t)

	assert.Equal(t, "secret-hash", newValues["password_hash"])
}

func TestRecordSnapshotNullability(t *testing.T) {
	store := newCaptureStore()
	recorder := NewRecorder(store, zap.NewNop())

	recorder.Record(1, "vehicle", 9, models.AuditActionCreate, nil, map[string]interface{}{"vin": "X"}, "", nil)
	created := store.waitForEntry(t)
	assert.Nil(t, created.OldValues)
	assert.NotNil(t, created.NewValues)

	recorder.Record(1, "vehicle", 9, models.AuditActionDelete, map[string]interface{}{"vin": "X"}, nil, "", nil)
	deleted := store.waitForEntry(t)
	assert.NotNil(t, deleted.OldValues)
	assert.Nil(t, deleted.NewValues)

	recorder.Record(1, "vehicle", 9, models.AuditActionUpdate, map[string]interface{}{"vin": "X"}, map[string]interface{}{"vin": "Y"}, "", nil)
	updated := store.waitForEntry(t)
	assert.NotNil(t, updated.OldValues)
	assert.NotNil(t, updated.NewValues)
}

func TestRecordSwallowsStoreFailure(t *testing.T) {
	store := newCaptureStore()
	store.err = errors.New("insert failed")
	recorder := NewRecorder(store, zap.NewNop())

	assert.NotPanics(t, func() {
		recorder.Record(1, "boat", 2, models.AuditActionCreate, nil, map[string]interface{}{"name": "Atlantic"}, "", nil)
		store.waitForEntry(t)
	})
}

type panicStore struct {
	called chan struct{}
}

func (s *panicStore) PersistEntry(models.AuditLog) error {
	close(s.called)
	panic("storage exploded")
}

func TestRecordRecoversStorePanic(t *testing.T) {
	store := &panicStore{called: make(chan struct{})}
	recorder := NewRecorder(store, zap.NewNop())

	recorder.Record(1, "booking", 5, models.AuditActionDelete, map[string]interface{}{"id": 5}, nil, "", nil)

	select {
	case <-store.called:
	case <-time.After(2 * time.Second):
		t.Fatal("store was never called")
	}
	// give the recovering goroutine a beat; the test passes as long as
	// the panic never reaches the test goroutine
	time.Sleep(50 * time.Millisecond)
}

func TestSnapshotUsesJSONFieldNames(t *testing.T) {
	vehicle := models.Vehicle{ID: 1, Vin: "VIN123", Mark: "Toyota"}

	snapshot := Snapshot(vehicle)

	assert.Equal(t, "VIN123", snapshot["vin"])
	assert.Equal(t, "Toyota", snapshot["mark"])
	assert.NotContains(t, snapshot, "Vin")
}
