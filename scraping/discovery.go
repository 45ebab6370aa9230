package scraping

import (
	"context"
	"net/http"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

// CandidatePaths - Paths probed on every device, in probe order.
var CandidatePaths = []string{
	"/",
	"/index.cgi",
	"/main.cgi",
	"/status.cgi",
	"/system.cgi",
	"/info.cgi",
	"/config.cgi",
	"/network.cgi",
	"/device.cgi",
	"/stats.cgi",
	"/monitor.cgi",
	"/port.cgi?page=stats",
	"/port.cgi",
}

// Pages with at most this many characters are considered empty stubs.
const minPageLength = 100

// DiscoverPages - Candidate paths which answer 200 with a non-trivial body, in probe order.
// Failing probes only mean the page is absent.
func DiscoverPages(ctx context.Context, session *Session, timeout time.Duration) []string {
	var pages []string
	for _, path := range CandidatePaths {
		if ctx.Err() != nil {
			break
		}
		response, err := session.Get(ctx, path, timeout)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"path": path,
			}).Debug("Page probe failed")
			continue
		}
		if response.StatusCode != http.StatusOK || utf8.RuneCountInString(response.Body) <= minPageLength {
			log.WithFields(log.Fields{
				"path":   path,
				"status": response.StatusCode,
			}).Debug("Page not available")
			continue
		}
		pages = append(pages, path)
	}
	return pages
}
