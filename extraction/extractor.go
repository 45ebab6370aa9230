package extraction

import (
	"strings"

	"dev.hon.one/sodola/common"
)

// Pages with dedicated extractors.
const (
	PortStatsPage  = "/port.cgi?page=stats"
	PortConfigPage = "/port.cgi"
)

// MetricExtractor - Turns the HTML of one page into metric samples.
// Extractors never fail as a whole, unparsable rows are skipped.
type MetricExtractor interface {
	Name() string
	Extract(page string, body string) *common.Catalog
}

// ForPage - The extractor for a discovered page, nil if the page is not scraped.
// Pages without a dedicated extractor use the heuristic one only if generic is set.
func ForPage(page string, generic bool) MetricExtractor {
	switch {
	case strings.Contains(page, strings.TrimPrefix(PortStatsPage, "/")):
		return PortStatsExtractor{}
	case page == PortConfigPage:
		return PortConfigExtractor{}
	case generic:
		return GenericHeuristicExtractor{}
	}
	return nil
}
