package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TopicCatalog = "catalog.events"
	TopicOrders  = "order.events"
)

const (
	ProductSaved   = "ProductSaved"
	ProductDeleted = "ProductDeleted"
	VariantSaved   = "VariantSaved"
	VariantDeleted = "VariantDeleted"
	ImageSaved     = "ImageSaved"
	ImageDeleted   = "ImageDeleted"
	OrderSaved     = "OrderSaved"
	OrderDeleted   = "OrderDeleted"
)

const Version = 1

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// New wraps payload in a version 1 envelope correlated by the aggregate id.
func New(eventType, producer, traceID string, aggregateID int64, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  Version,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		TraceID:       traceID,
		CorrelationID: PartitionKey(aggregateID),
		Payload:       raw,
	}, nil
}

// PartitionKey keeps every event of one aggregate on one partition, in order.
func PartitionKey(aggregateID int64) string { return fmt.Sprintf("%d", aggregateID) }

// ---- payloads ----

type ProductPayload struct {
	ProductID int64  `json:"product_id"`
	Slug      string `json:"slug,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

type VariantPayload struct {
	VariantID int64  `json:"variant_id"`
	ProductID int64  `json:"product_id"`
	Inventory int    `json:"inventory"`
	Band      string `json:"inventory_band,omitempty"`
}

type ImagePayload struct {
	ImageID   int64 `json:"image_id"`
	ProductID int64 `json:"product_id"`
}

type OrderPayload struct {
	OrderID    int64  `json:"order_id"`
	IsPaid     bool   `json:"is_paid"`
	ItemsCount int    `json:"items_count"`
	TotalPrice string `json:"total_price"`
}
