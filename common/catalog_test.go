package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog := NewCatalog()
	catalog.Add("b", Labels{"ifIndex": "2"}, 2)
	catalog.Add("a", Labels{"ifIndex": "1"}, 1)
	catalog.Add("b", Labels{"ifIndex": "1"}, 3)

	assert.Equal(t, []string{"a", "b"}, catalog.Names())
	assert.Equal(t, 3, catalog.Len())
	samples := catalog.Family("b")
	require.Len(t, samples, 2)
	assert.Equal(t, Sample{Name: "b", Labels: Labels{"ifIndex": "2"}, Value: 2}, samples[0])
	assert.Nil(t, catalog.Family("c"))
}

func TestCatalogMerge(t *testing.T) {
	first := NewCatalog()
	first.Describe(Descriptor{Name: "x", Help: "first", Type: MetricTypeGauge})
	first.Add("x", nil, 1)

	second := NewCatalog()
	second.Describe(Descriptor{Name: "x", Help: "second", Type: MetricTypeCounter})
	second.Describe(Descriptor{Name: "y", Help: "y", Type: MetricTypeGauge})
	second.Add("x", nil, 2)
	second.Add("y", nil, 3)

	first.Merge(second)
	first.Merge(nil)

	assert.Equal(t, 3, first.Len())
	assert.Equal(t, []float64{1, 2}, []float64{first.Family("x")[0].Value, first.Family("x")[1].Value})
	descriptor, found := first.Descriptor("x")
	require.True(t, found)
	assert.Equal(t, "first", descriptor.Help)
	_, found = first.Descriptor("y")
	assert.True(t, found)
}
