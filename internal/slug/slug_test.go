package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Summer T-Shirt":      "summer-t-shirt",
		"  Linen   Pants!! ":  "linen-pants",
		"ALREADY-slug":        "already-slug",
		"100% Cotton / Large": "100-cotton-large",
		"***":                 "",
	}
	for in, want := range cases {
		require.Equal(t, want, Make(in), in)
	}
}

func TestValid(t *testing.T) {
	require.True(t, Valid("summer-t-shirt"))
	require.False(t, Valid("Summer"))
	require.False(t, Valid("-edge-"))
	require.False(t, Valid(""))
}
