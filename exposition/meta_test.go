package exposition

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteScrapeMetaSuccess(t *testing.T) {
	var builder strings.Builder
	require.NoError(t, WriteScrapeMeta(&builder, true, 1500*time.Millisecond))

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(strings.NewReader(builder.String()))
	require.NoError(t, err)
	assert.Equal(t, 1.0, families["sodola_up"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, 1.5, families["sodola_scrape_duration_seconds"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, "Whether the Sodola device is up and responding", families["sodola_up"].GetHelp())
	assert.Equal(t, "Time spent scraping Sodola device", families["sodola_scrape_duration_seconds"].GetHelp())
}

func TestWriteScrapeMetaFailure(t *testing.T) {
	var builder strings.Builder
	require.NoError(t, WriteScrapeMeta(&builder, false, 3*time.Second))

	text := builder.String()
	assert.Contains(t, text, "sodola_up 0\n")
	assert.Contains(t, text, "sodola_scrape_duration_seconds 0\n")
}
