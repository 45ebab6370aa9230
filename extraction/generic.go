package extraction

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"dev.hon.one/sodola/common"
	"dev.hon.one/sodola/exposition"
)

// Element texts containing a number. The metric name comes from the text preceding the element.
var genericElementRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<td[^>]*>([^<]*\d+(?:\.\d+)?[^<]*)</td>`),
	regexp.MustCompile(`(?i)<span[^>]*>([^<]*\d+(?:\.\d+)?[^<]*)</span>`),
	regexp.MustCompile(`(?i)<div[^>]*>([^<]*\d+(?:\.\d+)?[^<]*)</div>`),
}

// Key/value pairs, later patterns override earlier ones for the same key.
var genericPairRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\w+):\s*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(\w+)\s*=\s*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(rx_bytes|tx_bytes|rx_packets|tx_packets):\s*(\d+)`),
	regexp.MustCompile(`(?i)(cpu|memory|temperature|uptime|voltage):\s*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(status|state|connected|online):\s*(\d+)`),
}

var genericNumberRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)

// GenericHeuristicExtractor - Best-effort extraction of any number found on a page.
// Names are guessed from surrounding markup and the values carry no labels or units.
// Not used unless generic extraction is enabled.
type GenericHeuristicExtractor struct{}

// Name - Extractor name for logging.
func (GenericHeuristicExtractor) Name() string {
	return "generic"
}

// Extract - Collect sodola_<page>_<key> gauges from the page.
func (GenericHeuristicExtractor) Extract(page string, body string) *common.Catalog {
	values := ExtractGenericValues(page, body)

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	catalog := common.NewCatalog()
	for _, name := range names {
		catalog.Describe(common.Descriptor{
			Name: name,
			Help: fmt.Sprintf("Value heuristically extracted from %v", page),
			Type: common.MetricTypeGauge,
		})
		catalog.Add(name, common.Labels{}, values[name])
	}
	return catalog
}

// ExtractGenericValues - Map of sanitized metric name to the last value found for it.
func ExtractGenericValues(page string, body string) map[string]float64 {
	text := stripScripts(body)
	pageName := strings.TrimPrefix(page, "/")
	values := make(map[string]float64)

	record := func(key string, rawValue string) {
		value, err := strconv.ParseFloat(rawValue, 64)
		if err != nil {
			return
		}
		name := exposition.SanitizeName(fmt.Sprintf("sodola_%v_%v", pageName, key))
		if name == "" {
			return
		}
		values[name] = value
	}

	for _, regex := range genericElementRegexes {
		for _, match := range regex.FindAllStringSubmatch(text, -1) {
			content := match[1]
			number := genericNumberRegex.FindString(content)
			if number == "" {
				continue
			}
			// Name after the word closest before the element content
			contextRegex, err := regexp.Compile(`(\w+)[^>]*>` + regexp.QuoteMeta(content))
			if err != nil {
				continue
			}
			context := contextRegex.FindStringSubmatch(text)
			if context == nil {
				continue
			}
			record(context[1], number)
		}
	}
	for _, regex := range genericPairRegexes {
		for _, match := range regex.FindAllStringSubmatch(text, -1) {
			record(match[1], match[2])
		}
	}
	return values
}

// stripScripts - Remove script and style elements. The rest is rendered back as HTML.
func stripScripts(body string) string {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return body
	}
	document.Find("script, style").Remove()
	text, err := document.Html()
	if err != nil {
		return body
	}
	return text
}
