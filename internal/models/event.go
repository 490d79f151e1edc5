package models

import "time"

// Product lifecycle event types, also used as AMQP routing keys.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent is published after a product has been created, updated or deleted.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  uint64    `json:"product_id"`
	Product    *Product  `json:"product,omitempty"` // nil for deletions
	OccurredAt time.Time `json:"occurred_at"`
}
