package cachesync

import (
	"context"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-shop-admin.git/internal/catalog"
	"github.com/ariefcatur/go-shop-admin.git/internal/events"
	kafkax "github.com/ariefcatur/go-shop-admin.git/internal/kafka"
)

type Invalidator interface {
	Invalidate(ctx context.Context, productIDs ...int64) error
}

type Deduper interface {
	Claim(ctx context.Context, eventID string) (bool, error)
	Release(ctx context.Context, eventID string) error
}

// Service keeps the storefront cache consistent with catalog writes made
// by any api replica.
type Service struct {
	Cache Invalidator
	Dedup Deduper
	Log   *zap.Logger
}

// Handle is installed as the catalog topic consumer handler.
func (s *Service) Handle(ctx context.Context, m kafkago.Message) error {
	env, err := kafkax.UnmarshalEnvelope(m.Value)
	if err != nil {
		// undecodable messages are committed so they do not block the partition
		s.Log.Warn("skip malformed event", zap.Int64("offset", m.Offset), zap.Error(err))
		return nil
	}
	log := s.Log.With(zap.String("event_id", env.EventID), zap.String("event_type", env.EventType))

	productID, ok, err := productOf(env)
	if err != nil {
		log.Warn("skip event with bad payload", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	claimed, err := s.Dedup.Claim(ctx, env.EventID)
	if err != nil {
		return fmt.Errorf("claim %s: %w", env.EventID, err)
	}
	if !claimed {
		log.Debug("duplicate delivery")
		return nil
	}

	if err := s.Cache.Invalidate(ctx, productID); err != nil {
		if rerr := s.Dedup.Release(ctx, env.EventID); rerr != nil {
			log.Warn("release claim", zap.Error(rerr))
		}
		return fmt.Errorf("invalidate product %d: %w", productID, err)
	}
	log.Debug("cache invalidated", zap.Int64("product_id", productID))

	if env.EventType == events.VariantSaved {
		s.checkStock(log, env)
	}
	return nil
}

func (s *Service) checkStock(log *zap.Logger, env events.Envelope) {
	p, err := kafkax.UnwrapPayload[events.VariantPayload](env.Payload)
	if err != nil {
		return
	}
	if catalog.BandOf(p.Inventory) == catalog.BandLow {
		log.Warn("variant inventory low",
			zap.Int64("variant_id", p.VariantID),
			zap.Int64("product_id", p.ProductID),
			zap.Int("inventory", p.Inventory))
	}
}

// productOf maps a catalog event to the product whose views it touches.
// ok=false means the event does not affect the cache.
func productOf(env events.Envelope) (int64, bool, error) {
	switch env.EventType {
	case events.ProductSaved, events.ProductDeleted:
		p, err := kafkax.UnwrapPayload[events.ProductPayload](env.Payload)
		return p.ProductID, err == nil, err
	case events.VariantSaved, events.VariantDeleted:
		p, err := kafkax.UnwrapPayload[events.VariantPayload](env.Payload)
		return p.ProductID, err == nil, err
	case events.ImageSaved, events.ImageDeleted:
		p, err := kafkax.UnwrapPayload[events.ImagePayload](env.Payload)
		return p.ProductID, err == nil, err
	default:
		return 0, false, nil
	}
}
