package extraction

import (
	"fmt"
	"strconv"
	"strings"

	"dev.hon.one/sodola/common"
)

// The device reports packet counts only. Octet counters are estimated from them using these
// assumed average frame sizes, they are not measured values.
const (
	AvgGoodFrameOctets  = 800 // Mix of small control frames and larger data frames
	AvgErrorFrameOctets = 64  // Errored frames tend to be runts
)

// Port statistics table: port, state, link status, tx good, tx bad, rx good, rx bad.
const portStatsColumns = 7

// PortStatsExtractor - Extracts status and packet counters from the port statistics page.
type PortStatsExtractor struct{}

// Name - Extractor name for logging.
func (PortStatsExtractor) Name() string {
	return "port_stats"
}

// Extract - Parse the port statistics table.
// A row with malformed counters keeps its status samples but contributes no counters.
func (extractor PortStatsExtractor) Extract(page string, body string) *common.Catalog {
	catalog := common.NewCatalog()
	for _, row := range portRows(extractor.Name(), body, portStatsColumns) {
		labels := interfaceLabels(row.Port)
		catalog.Add(common.MetricIfAdminStatus, labels, AdminStatus(row.Cells[1]))
		catalog.Add(common.MetricIfOperStatus, labels, OperStatus(row.Cells[2]))

		counters, err := parseCounters(row.Cells[3:7])
		if err != nil {
			showRowSkip(extractor.Name(), row.Port, err.Error())
			continue
		}
		txGood, txBad, rxGood, rxBad := counters[0], counters[1], counters[2], counters[3]
		catalog.Add(common.MetricIfOutUcastPkts, labels, txGood)
		catalog.Add(common.MetricIfOutErrors, labels, txBad)
		catalog.Add(common.MetricIfInUcastPkts, labels, rxGood)
		catalog.Add(common.MetricIfInErrors, labels, rxBad)
		catalog.Add(common.MetricIfHCOutOctets, labels, EstimateOctets(txGood, txBad))
		catalog.Add(common.MetricIfHCInOctets, labels, EstimateOctets(rxGood, rxBad))
	}
	return catalog
}

// AdminStatus - 1 (up) for "Enable", else 2 (down).
func AdminStatus(state string) float64 {
	if strings.EqualFold(strings.TrimSpace(state), "enable") {
		return common.IfStatusUp
	}
	return common.IfStatusDown
}

// OperStatus - 1 (up) if the link status mentions "up", else 2 (down).
func OperStatus(linkStatus string) float64 {
	if strings.Contains(strings.ToLower(linkStatus), "up") {
		return common.IfStatusUp
	}
	return common.IfStatusDown
}

// EstimateOctets - Estimated octet count from good and errored frame counts.
func EstimateOctets(goodFrames float64, errorFrames float64) float64 {
	return goodFrames*AvgGoodFrameOctets + errorFrames*AvgErrorFrameOctets
}

func parseCounters(cells []string) ([]float64, error) {
	counters := make([]float64, len(cells))
	for i, cell := range cells {
		value, err := strconv.ParseUint(cell, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed counter %q", cell)
		}
		counters[i] = float64(value)
	}
	return counters, nil
}
