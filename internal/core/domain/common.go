package domain

import "time"

// AuditFields carries the who/when columns embedded in every persisted
// entity. CreatedBy and LastUpdatedBy are user IDs.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
