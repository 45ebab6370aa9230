package util

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExporterMetric(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewExporterMetric(registry, "sodola", "1.2.3")

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "sodola_exporter_info", families[0].GetName())
	labels := families[0].GetMetric()[0].GetLabel()
	require.Len(t, labels, 1)
	assert.Equal(t, "version", labels[0].GetName())
	assert.Equal(t, "1.2.3", labels[0].GetValue())
}

func TestNewCounterVec(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := NewCounterVec(registry, "sodola", "exporter", "scrapes_total", "Scrapes.", []string{"result"})
	counter.WithLabelValues("success").Inc()
	counter.WithLabelValues("success").Inc()

	counter.WithLabelValues("failure").Inc()

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "sodola_exporter_scrapes_total", families[0].GetName())
	values := make(map[string]float64)
	for _, metric := range families[0].GetMetric() {
		values[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"success": 2, "failure": 1}, values)
}
