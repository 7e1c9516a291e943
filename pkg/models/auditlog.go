package models

import (
	"encoding/json"
	"time"
)

const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditLog is one append-only row of the audit trail. OldValues and
// NewValues hold full pre/post snapshots, never diffs; either side is
// nil per the CREATE/DELETE nullability rule.
type AuditLog struct {
	ID         int             `json:"id" db:"id"`
	UserID     int             `json:"user_id" db:"user_id"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   int             `json:"entity_id" db:"entity_id"`
	Action     string          `json:"action" db:"action"`
	OldValues  json.RawMessage `json:"old_values" db:"old_values"`
	NewValues  json.RawMessage `json:"new_values" db:"new_values"`
	IPAddress  string          `json:"ip_address" db:"ip_address"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// AuditLogView is an AuditLog joined with the acting user's name for
// the admin read endpoint.
type AuditLogView struct {
	AuditLog
	ActorUsername *string `json:"actor_username" db:"actor_username"`
}
