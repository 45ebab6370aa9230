package db

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2write "github.com/influxdata/influxdb-client-go/v2/api/write"
	log "github.com/sirupsen/logrus"

	"dev.hon.one/sodola/common"
	"dev.hon.one/sodola/util"
)

// Measurement names.
const (
	MeasurementScrape    = "scrape"
	MeasurementInterface = "interface"
)

var clientMutex sync.Mutex
var clientWriteAPI influxdb2api.WriteAPI

// Enabled - Whether an InfluxDB URL is configured.
func Enabled() bool {
	return common.GlobalConfig.InfluxDB.URL != ""
}

// StartClient - Start DB client in the background. Does nothing if no URL is configured.
func StartClient(waitGroup *sync.WaitGroup, shutdown *util.ShutdownChannelDistributor) {
	if !Enabled() {
		return
	}
	config := common.GlobalConfig.InfluxDB

	// Setup shutdown signal and waitgroup
	shutdownChannel := make(chan bool, 1)
	if !shutdown.AddListener(shutdownChannel) {
		return
	}
	waitGroup.Add(1)

	client := influxdb2.NewClient(config.URL, config.Token)

	cleanup := func() {
		clientMutex.Lock()
		writeAPI := clientWriteAPI
		clientWriteAPI = nil
		clientMutex.Unlock()
		if writeAPI != nil {
			writeAPI.Flush()
		}
		client.Close()
		log.Info("DB client stopped")
		waitGroup.Done()
	}

	go func() {
		// Wait for DB connection (true) to come up or for shutdown signal (false)
		if !waitForDBUp(client, shutdownChannel) {
			cleanup()
			return
		}

		// Setup async write API and error logging
		writeAPI := client.WriteAPI(config.Org, config.Bucket)
		go func() {
			for err := range writeAPI.Errors() {
				log.WithError(err).Error("Failed to write to database")
			}
		}()
		clientMutex.Lock()
		clientWriteAPI = writeAPI
		clientMutex.Unlock()
		log.Info("DB client started: ", config.URL)

		<-shutdownChannel
		cleanup()
	}()
}

func waitForDBUp(client influxdb2.Client, shutdownChannel <-chan bool) bool {
	checkHealth := func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := client.Health(ctx)
		if err != nil {
			log.WithError(err).Tracef("Database connection error")
			return false
		}
		return true
	}
	if checkHealth() {
		return true
	}
	log.Info("Waiting for database")
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if checkHealth() {
				return true
			}
		case <-shutdownChannel:
			return false
		}
	}
}

func writePoints(points ...*influxdb2write.Point) {
	clientMutex.Lock()
	defer clientMutex.Unlock()
	if clientWriteAPI == nil {
		return
	}
	for _, point := range points {
		clientWriteAPI.WritePoint(point)
	}
}

// StoreScrapeEntry - Attempt to store a scrape entry in the DB.
func StoreScrapeEntry(entry common.ScrapeEntry) {
	log.WithFields(log.Fields{
		"target":   entry.Target,
		"time":     entry.Time,
		"duration": entry.Duration,
		"success":  entry.Success,
		"samples":  entry.Samples,
	}).Trace("Scrape entry")

	writePoints(ScrapeEntryPoint(entry))
}

// StoreCatalog - Attempt to store the interface samples of a scrape in the DB.
func StoreCatalog(target string, timestamp time.Time, catalog *common.Catalog) {
	if catalog == nil {
		return
	}
	writePoints(CatalogPoints(target, timestamp, catalog)...)
}

// ScrapeEntryPoint - Point for a scrape entry.
func ScrapeEntryPoint(entry common.ScrapeEntry) *influxdb2write.Point {
	return influxdb2.NewPointWithMeasurement(MeasurementScrape).
		AddTag("source", entry.Target).
		AddField("duration_seconds", entry.Duration.Seconds()).
		AddField("success", entry.Success).
		AddField("samples", entry.Samples).
		SetTime(entry.Time)
}

// CatalogPoints - One point per interface ordered by ifIndex, with every metric as a field.
// Samples without an ifIndex label are left out.
func CatalogPoints(target string, timestamp time.Time, catalog *common.Catalog) []*influxdb2write.Point {
	type interfaceKey struct {
		index int
		name  string
	}
	points := make(map[interfaceKey]*influxdb2write.Point)
	var order []interfaceKey

	for _, name := range catalog.Names() {
		for _, sample := range catalog.Family(name) {
			index, err := strconv.Atoi(sample.Labels[common.LabelIfIndex])
			if err != nil {
				continue
			}
			key := interfaceKey{index: index, name: sample.Labels[common.LabelIfName]}
			point, found := points[key]
			if !found {
				point = influxdb2.NewPointWithMeasurement(MeasurementInterface).
					AddTag("source", target).
					AddTag(common.LabelIfIndex, strconv.Itoa(index)).
					AddTag(common.LabelIfName, key.name).
					SetTime(timestamp)
				points[key] = point
				order = append(order, key)
			}
			point.AddField(name, sample.Value)
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].index != order[j].index {
			return order[i].index < order[j].index
		}
		return order[i].name < order[j].name
	})
	result := make([]*influxdb2write.Point, len(order))
	for i, key := range order {
		result[i] = points[key]
	}
	return result
}
