package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"

	"dev.hon.one/sodola/common"
	"dev.hon.one/sodola/exposition"
	"dev.hon.one/sodola/scraping"
	"dev.hon.one/sodola/util"
)

// Self metrics, served on /metrics.
var (
	metricsRegistry = prometheus.NewRegistry()
	scrapesCounter  = util.NewCounterVec(metricsRegistry, common.PrometheusNamespace, "exporter", "scrapes_total",
		"Device scrapes made by the exporter.", []string{"result"})
	scrapeDurationHistogram = util.NewHistogram(metricsRegistry, common.PrometheusNamespace, "exporter", "scrape_duration_seconds",
		"Duration of device scrapes made by the exporter.")
)

func init() {
	metricsRegistry.MustRegister(collectors.NewGoCollector())
	metricsRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	util.NewExporterMetric(metricsRegistry, common.PrometheusNamespace, common.AppVersion)
}

// RecordScrape - Count a scrape in the self metrics.
func RecordScrape(entry common.ScrapeEntry) {
	if entry.Success {
		scrapesCounter.WithLabelValues("success").Inc()
		scrapeDurationHistogram.Observe(entry.Duration.Seconds())
	} else {
		scrapesCounter.WithLabelValues("failure").Inc()
	}
}

// StartServer - Start HTTP server in the background.
func StartServer(waitGroup *sync.WaitGroup, shutdown *util.ShutdownChannelDistributor) {
	shutdownChannel := make(chan bool, 1)
	if !shutdown.AddListener(shutdownChannel) {
		return
	}
	waitGroup.Add(1)

	// Configure
	endpoint := common.GlobalConfig.HTTP.Endpoint()
	server := &http.Server{
		Addr:              endpoint,
		Handler:           NewHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run
	shutdownDone := make(chan struct{})
	go func() {
		defer waitGroup.Done()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("HTTP server failed")
		}
		log.Info("HTTP server stopped")
		close(shutdownDone)
	}()

	// Shutdown
	go func() {
		select {
		case <-shutdownChannel:
			shutdownContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownContext); err != nil {
				log.WithError(err).Warn("HTTP server shutdown failed")
			}
		case <-shutdownDone:
		}
	}()

	log.Infof("HTTP server started: %v", endpoint)
}

// NewHandler - Request router of the exporter service.
func NewHandler() http.Handler {
	var mainServeMux http.ServeMux
	mainServeMux.HandleFunc("/", handleOtherRequest)
	mainServeMux.HandleFunc("/sodola", handleSodolaRequest)
	mainServeMux.HandleFunc("/health", handleHealthRequest)
	mainServeMux.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	return &mainServeMux
}

func handleOtherRequest(response http.ResponseWriter, request *http.Request) {
	if request.URL.Path != "/" {
		http.Error(response, "404 - Page not found.", http.StatusNotFound)
		return
	}
	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := writeInfoPage(response); err != nil {
		log.WithError(err).Warn("Failed to write info page")
	}
}

func handleHealthRequest(response http.ResponseWriter, request *http.Request) {
	health := struct {
		Status    string  `json:"status"`
		Timestamp float64 `json:"timestamp"`
		Service   string  `json:"service"`
	}{
		Status:    "healthy",
		Timestamp: float64(time.Now().UnixNano()) / float64(time.Second),
		Service:   common.HealthServiceName,
	}
	response.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(response)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(health); err != nil {
		log.WithError(err).Warn("Failed to write health response")
	}
}

func handleSodolaRequest(response http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	log.WithFields(log.Fields{
		"endpoint": "sodola",
		"client":   request.RemoteAddr,
		"target":   query.Get("target"),
	}).Trace("Request")

	address := query.Get("target")
	if address == "" {
		http.Error(response, "Missing required 'target' parameter", http.StatusBadRequest)
		return
	}
	target := requestTarget(address, query.Get("username"), query.Get("password"))

	log.WithFields(log.Fields{
		"target": target.BaseURL(),
	}).Info("Scraping metrics")
	options := scraping.OptionsFromConfig(common.GlobalConfig.Scrape)
	result := scraping.ScrapeTarget(request.Context(), target, options)
	RecordScrape(result.Entry)

	if result.Err != nil {
		log.WithError(result.Err).WithFields(log.Fields{
			"target": target.BaseURL(),
		}).Error("Failed to scrape target")
	} else {
		log.WithFields(log.Fields{
			"target":   target.BaseURL(),
			"duration": fmt.Sprintf("%.2fs", result.Entry.Duration.Seconds()),
		}).Info("Scrape completed")
	}

	// Always 200, failure is reported through sodola_up
	response.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	response.WriteHeader(http.StatusOK)
	if result.Catalog != nil {
		if err := exposition.WriteText(response, result.Catalog); err != nil {
			log.WithError(err).Warn("Failed to write metrics")
			return
		}
	}
	if err := exposition.WriteScrapeMeta(response, result.Err == nil, result.Entry.Duration); err != nil {
		log.WithError(err).Warn("Failed to write scrape metrics")
	}
}

// requestTarget - Target for a request, with credentials from the query, a configured target or the defaults.
func requestTarget(address string, username string, password string) common.Target {
	target, found := common.LookupTarget(address)
	if !found {
		target = common.Target{
			Name:       address,
			Address:    address,
			Credential: common.GlobalConfig.Defaults,
		}
	}
	if username != "" {
		target.Username = username
	}
	if password != "" {
		target.Password = password
	}
	return target
}
