package exposition

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"dev.hon.one/sodola/common"
	"dev.hon.one/sodola/util"
)

// WriteScrapeMeta - Write the scrape duration and up gauges of one scrape.
// A failed scrape reports up 0 and a zero duration.
func WriteScrapeMeta(writer io.Writer, success bool, duration time.Duration) error {
	registry := prometheus.NewRegistry()
	durationGauge := util.NewGauge(registry, common.PrometheusNamespace, "", "scrape_duration_seconds", "Time spent scraping Sodola device", nil)
	upGauge := util.NewGauge(registry, common.PrometheusNamespace, "", "up", "Whether the Sodola device is up and responding", nil)
	if success {
		durationGauge.Set(duration.Seconds())
		upGauge.Set(1)
	}

	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(writer, family); err != nil {
			return err
		}
	}
	return nil
}
