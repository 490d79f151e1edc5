package app

import (
	"encoding/json"
	"fmt"

	"catalog/internal/models"

	"github.com/rs/zerolog/log"
	amqp "github.com/streadway/amqp"
)

// logProductEvent records a consumed product event in the service log.
func logProductEvent(msg amqp.Delivery) error {
	var event models.ProductEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("failed to decode product event: %w", err)
	}
	log.Info().
		Str("event", event.Type).
		Uint64("product_id", event.ProductID).
		Time("occurred_at", event.OccurredAt).
		Str("message_id", msg.MessageId).
		Msg("product event received")
	return nil
}
