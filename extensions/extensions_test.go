package extensions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHas(t *testing.T) {
	e := MultilineSteps | Temperature
	require.True(t, e.Has(MultilineSteps))
	require.True(t, e.Has(Temperature))
	require.False(t, e.Has(Modes))
	require.True(t, e.Has(MultilineSteps|Temperature))
}

func TestWithWithout(t *testing.T) {
	e := None
	e = e.With(Modes)
	require.True(t, e.Has(Modes))
	e = e.Without(Modes)
	require.False(t, e.Has(Modes))
}

func TestAllEnablesEverything(t *testing.T) {
	all := All()
	for _, n := range names {
		require.True(t, all.Has(n.flag), n.name)
	}
}

func TestString(t *testing.T) {
	require.Equal(t, "NONE", None.String())
	require.Equal(t, "MODES", Modes.String())
	require.Contains(t, (MultilineSteps | Modes).String(), "MULTILINE_STEPS")
}
