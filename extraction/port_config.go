package extraction

import (
	"strings"

	"dev.hon.one/sodola/common"
)

// Port configuration status table: port, state, configured speed, actual speed/duplex,
// configured flow control, actual flow control.
const portConfigColumns = 6

const linkDown = "Link Down"

// Speed classes in Mbps, checked in order. The first class with a matching token wins.
var speedClasses = []struct {
	Tokens []string
	Mbps   int
}{
	{[]string{"10G", "10000"}, 10000},
	{[]string{"2500"}, 2500},
	{[]string{"1000"}, 1000},
	{[]string{"100"}, 100},
	{[]string{"10"}, 10},
}

// PortConfigExtractor - Extracts speed and duplex from the port configuration page.
type PortConfigExtractor struct{}

// Name - Extractor name for logging.
func (PortConfigExtractor) Name() string {
	return "port_config"
}

// Extract - Parse the port status table. Ports with link down produce no samples.
func (extractor PortConfigExtractor) Extract(page string, body string) *common.Catalog {
	catalog := common.NewCatalog()
	for _, row := range portRows(extractor.Name(), body, portConfigColumns) {
		actual := row.Cells[3]
		if strings.Contains(actual, linkDown) {
			continue
		}

		labels := interfaceLabels(row.Port)
		speed := ClassifySpeed(actual)
		if speed > 0 {
			catalog.Add(common.MetricIfSpeed, labels, float64(speed)*1000000)
			if speed >= common.IfHighSpeedFloor {
				catalog.Add(common.MetricIfHighSpeed, labels, float64(speed))
			}
		}
		catalog.Add(common.MetricIfDuplex, labels, float64(ClassifyDuplex(actual)))
	}
	return catalog
}

// ClassifySpeed - Link speed in Mbps from the actual speed field, 0 if down or unknown.
func ClassifySpeed(actual string) int {
	if strings.Contains(actual, linkDown) {
		return 0
	}
	for _, class := range speedClasses {
		for _, token := range class.Tokens {
			if strings.Contains(actual, token) {
				return class.Mbps
			}
		}
	}
	return 0
}

// ClassifyDuplex - Interface-MIB duplex code from the actual speed field.
// Links are assumed full-duplex unless the device says "Half" without "Full".
func ClassifyDuplex(actual string) int {
	if strings.Contains(actual, "Full") {
		return common.IfDuplexFull
	}
	if strings.Contains(actual, "Half") {
		return common.IfDuplexHalf
	}
	return common.IfDuplexFull
}
