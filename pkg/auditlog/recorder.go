package auditlog

import (
	"encoding/json"

	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"go.uber.org/zap"
)

// RedactionSentinel replaces the value of every sensitive field in
// both snapshots before persistence.
const RedactionSentinel = "[REDACTED]"

// Store persists one append-only audit row.
type Store interface {
	PersistEntry(entry models.AuditLog) error
}

// Recorder records before/after snapshots of entity mutations.
// Recording is best-effort: it never blocks the caller past dispatch
// and never propagates a failure.
type Recorder struct {
	store Store
	log   *zap.Logger
}

func NewRecorder(store Store, log *zap.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

// Record dispatches one audit entry. oldValues must be nil for CREATE
// and newValues nil for DELETE; both snapshots are full row states,
// with sensitiveFields redacted independently in each.
func (r *Recorder) Record(actorID int, entityType string, entityID int, action string, oldValues, newValues map[string]interface{}, ipAddress string, sensitiveFields []string) {
	oldRedacted := redact(oldValues, sensitiveFields)
	newRedacted := redact(newValues, sensitiveFields)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				r.log.Error("audit log dispatch panicked",
					zap.String("entity_type", entityType),
					zap.Int("entity_id", entityID),
					zap.Any("panic", p))
			}
		}()

		entry := models.AuditLog{
			UserID:     actorID,
			EntityType: entityType,
			EntityID:   entityID,
			Action:     action,
			IPAddress:  ipAddress,
		}

		var err error
		if entry.OldValues, err = marshalSnapshot(oldRedacted); err != nil {
			r.log.Error("failed to serialize audit snapshot", zap.Error(err),
				zap.String("entity_type", entityType), zap.Int("entity_id", entityID))
			return
		}
		if entry.NewValues, err = marshalSnapshot(newRedacted); err != nil {
			r.log.Error("failed to serialize audit snapshot", zap.Error(err),
				zap.String("entity_type", entityType), zap.Int("entity_id", entityID))
			return
		}

		if err := r.store.PersistEntry(entry); err != nil {
			r.log.Error("unable to create audit log entry", zap.Error(err),
				zap.String("entity_type", entityType),
				zap.Int("entity_id", entityID),
				zap.String("action", action))
		}
	}()
}

func marshalSnapshot(snapshot map[string]interface{}) (json.RawMessage, error) {
	if snapshot == nil {
		return nil, nil
	}
	return json.Marshal(snapshot)
}

// redact returns a copy of the snapshot with every listed field
// replaced by the sentinel. Applied to old and new independently so a
// sensitive value cannot leak through one side of a diff.
func redact(snapshot map[string]interface{}, sensitiveFields []string) map[string]interface{} {
	if snapshot == nil {
		return nil
	}

	out := make(map[string]interface{}, len(snapshot))
	for k, v := range snapshot {
		out[k] = v
	}
	for _, field := range sensitiveFields {
		if _, ok := out[field]; ok {
			out[field] = RedactionSentinel
		}
	}
	return out
}

// Snapshot converts an entity struct into the map form Record expects,
// keyed by the struct's json field names.
func Snapshot(entity interface{}) map[string]interface{} {
	if entity == nil {
		return nil
	}

	raw, err := json.Marshal(entity)
	if err != nil {
		return nil
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
