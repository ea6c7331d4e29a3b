package unitsconfig

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cooklang/cooklang/convert"
)

const sampleConfig = `
default_system = "metric"

[[unit]]
names = ["gram"]
symbols = ["g"]
ratio = 1
physical_quantity = "mass"
system = "metric"

[[unit]]
names = ["kilogram"]
symbols = ["kg"]
ratio = 1000
physical_quantity = "mass"
system = "metric"

[[best.mass]]
unit = "g"
threshold = 0

[[best.mass]]
unit = "kg"
threshold = 1000
`

func TestLoadBytes(t *testing.T) {
	reg, err := LoadBytes([]byte(sampleConfig))
	require.NoError(t, err)

	g, err := reg.GetUnit("g")
	require.NoError(t, err)
	require.Equal(t, "g", g.Symbol())

	best, ok := reg.BestUnitFor(convert.NumberValue(2500), g, reg.DefaultSystem())
	require.True(t, ok)
	require.Equal(t, "kg", best.Symbol())
}

func TestLoadBytesUnknownPhysicalQuantity(t *testing.T) {
	_, err := LoadBytes([]byte(`
[[unit]]
names = ["blob"]
ratio = 1
physical_quantity = "nonsense"
`))
	require.Error(t, err)
}

func TestLoadBytesBestReferencesUnknownUnit(t *testing.T) {
	_, err := LoadBytes([]byte(`
[[unit]]
names = ["gram"]
symbols = ["g"]
ratio = 1
physical_quantity = "mass"

[[best.mass]]
unit = "furlong"
threshold = 0
`))
	require.Error(t, err)
}
