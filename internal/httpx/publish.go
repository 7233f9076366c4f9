package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-shop-admin.git/internal/events"
	kafkax "github.com/ariefcatur/go-shop-admin.git/internal/kafka"
)

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Emitter wraps change payloads in envelopes and hands them to the topic producers.
type Emitter struct {
	Catalog Publisher
	Orders  Publisher
	Service string
	Log     *zap.Logger
}

func (e *Emitter) emit(r *http.Request, p Publisher, eventType string, aggregateID int64, payload any) {
	if e == nil || p == nil {
		return
	}
	env, err := events.New(eventType, e.Service, middleware.GetReqID(r.Context()), aggregateID, payload)
	if err != nil {
		e.Log.Error("build event", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	p.Publish([]byte(events.PartitionKey(aggregateID)), kafkax.MustMarshal(env), kafkax.EnvelopeHeaders(env)...)
}

func (e *Emitter) catalog(r *http.Request, eventType string, aggregateID int64, payload any) {
	if e != nil {
		e.emit(r, e.Catalog, eventType, aggregateID, payload)
	}
}

func (e *Emitter) orders(r *http.Request, eventType string, aggregateID int64, payload any) {
	if e != nil {
		e.emit(r, e.Orders, eventType, aggregateID, payload)
	}
}
