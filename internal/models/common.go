package models

import "time"

// AuditFields holds bookkeeping timestamps shared by all rows.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
