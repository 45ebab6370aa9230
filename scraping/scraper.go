package scraping

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"dev.hon.one/sodola/common"
	"dev.hon.one/sodola/extraction"
)

// Options - Per-scrape settings.
type Options struct {
	DiscoveryTimeout  time.Duration
	PageTimeout       time.Duration
	GenericExtraction bool
}

// OptionsFromConfig - Scrape options from the scrape config section.
func OptionsFromConfig(config common.ScrapeConfig) Options {
	return Options{
		DiscoveryTimeout:  config.DiscoveryTimeout,
		PageTimeout:       config.PageTimeout,
		GenericExtraction: config.GenericExtraction,
	}
}

// Result - Outcome of one scrape.
type Result struct {
	Entry   common.ScrapeEntry
	Catalog *common.Catalog // Nil on failure
	Err     error
}

// Scrape - Log in, discover pages and extract metrics from a device.
// Only login and session failures are returned, failing pages are skipped.
func Scrape(ctx context.Context, target common.Target, options Options) (*common.Catalog, error) {
	fields := log.Fields{
		"target": target.Name,
	}

	session, err := NewSession(target.BaseURL())
	if err != nil {
		return nil, &ScrapeError{Target: target.Name, Err: err}
	}
	if err := Login(ctx, session, target.Credential, options.PageTimeout); err != nil {
		return nil, &ScrapeError{Target: target.Name, Err: err}
	}

	pages := DiscoverPages(ctx, session, options.DiscoveryTimeout)
	log.WithFields(fields).Debugf("Found %v accessible pages", len(pages))

	catalog := common.NewCatalog()
	for _, page := range pages {
		extractor := extraction.ForPage(page, options.GenericExtraction)
		if extractor == nil {
			continue
		}
		body, err := fetchPage(ctx, session, page, options.PageTimeout)
		if err != nil {
			log.WithError(err).WithFields(fields).Warn("Skipping page")
			continue
		}
		pageCatalog := extractor.Extract(page, body)
		log.WithFields(fields).WithFields(log.Fields{
			"page":      page,
			"extractor": extractor.Name(),
			"samples":   pageCatalog.Len(),
		}).Trace("Extracted page")
		catalog.Merge(pageCatalog)
	}

	// Cancelled mid-scrape, the catalog is incomplete
	if err := ctx.Err(); err != nil {
		return nil, &ScrapeError{Target: target.Name, Err: err}
	}
	return catalog, nil
}

// ScrapeTarget - Scrape and record timing and outcome.
func ScrapeTarget(ctx context.Context, target common.Target, options Options) Result {
	startTime := time.Now()
	catalog, err := Scrape(ctx, target, options)
	duration := time.Since(startTime)

	result := Result{
		Entry: common.ScrapeEntry{
			Time:     startTime,
			Target:   target.Name,
			Duration: duration,
			Success:  err == nil,
		},
		Catalog: catalog,
		Err:     err,
	}
	if catalog != nil {
		result.Entry.Samples = catalog.Len()
	}

	log.WithFields(log.Fields{
		"target":          target.Name,
		"scrape_duration": duration,
		"scrape_success":  err == nil,
		"samples":         result.Entry.Samples,
	}).Debug("Scraping target done")
	return result
}

func fetchPage(ctx context.Context, session *Session, page string, timeout time.Duration) (string, error) {
	response, err := session.Get(ctx, page, timeout)
	if err != nil {
		return "", &PageError{Path: page, Err: err}
	}
	if response.StatusCode != http.StatusOK {
		return "", &PageError{Path: page, StatusCode: response.StatusCode}
	}
	return response.Body, nil
}
