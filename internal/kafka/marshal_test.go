package kafka

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-shop-admin.git/internal/events"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := events.New(events.ProductSaved, "shop-admin", "", 5, events.ProductPayload{ProductID: 5, Slug: "cap"})
	require.NoError(t, err)

	got, err := UnmarshalEnvelope(MustMarshal(env))
	require.NoError(t, err)
	require.Equal(t, env.EventID, got.EventID)
	require.Equal(t, events.ProductSaved, got.EventType)

	p, err := UnwrapPayload[events.ProductPayload](got.Payload)
	require.NoError(t, err)
	require.Equal(t, int64(5), p.ProductID)
	require.Equal(t, "cap", p.Slug)
}

func TestUnmarshalEnvelope_Garbage(t *testing.T) {
	_, err := UnmarshalEnvelope([]byte("{not json"))
	require.Error(t, err)

	_, err = UnwrapPayload[events.ProductPayload]([]byte(`"text"`))
	require.Error(t, err)
}

func TestEnvelopeHeaders(t *testing.T) {
	h := EnvelopeHeaders(events.Envelope{EventType: events.OrderSaved, EventVersion: 1})
	require.Len(t, h, 2)
	require.Equal(t, "x-event-type", h[0].Key)
	require.Equal(t, events.OrderSaved, string(h[0].Value))
	require.Equal(t, "1", string(h[1].Value))
}

func TestMustMarshal_Panics(t *testing.T) {
	require.Panics(t, func() { MustMarshal(make(chan int)) })
}
