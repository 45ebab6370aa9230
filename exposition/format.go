package exposition

import (
	"bufio"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"dev.hon.one/sodola/common"
)

var labelValueEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`)

// FormatText - Render the catalog in the Prometheus text format.
func FormatText(catalog *common.Catalog) string {
	var builder strings.Builder
	// Writing to a strings.Builder does not fail
	_ = WriteText(&builder, catalog)
	return builder.String()
}

// WriteText - Write the catalog in the Prometheus text format.
// Interface families come first in the fixed order, empty families are left out.
// Other families follow sorted by name. Samples are ordered by numeric ifIndex.
func WriteText(writer io.Writer, catalog *common.Catalog) error {
	buffered := bufio.NewWriter(writer)

	for _, descriptor := range InterfaceDescriptors {
		writeFamily(buffered, descriptor, catalog.Family(descriptor.Name))
	}
	for _, name := range catalog.Names() {
		if _, fixed := interfaceDescriptor(name); fixed {
			continue
		}
		descriptor, found := catalog.Descriptor(name)
		if !found {
			descriptor = common.Descriptor{Name: name, Help: defaultHelp, Type: common.MetricTypeGauge}
		}
		writeFamily(buffered, descriptor, catalog.Family(name))
	}

	return buffered.Flush()
}

func writeFamily(writer *bufio.Writer, descriptor common.Descriptor, samples []common.Sample) {
	if len(samples) == 0 {
		return
	}
	writer.WriteString("# HELP " + descriptor.Name + " " + descriptor.Help + "\n")
	writer.WriteString("# TYPE " + descriptor.Name + " " + string(descriptor.Type) + "\n")
	for _, sample := range sortedSamples(samples) {
		writer.WriteString(descriptor.Name)
		writer.WriteString(formatLabels(sample.Labels))
		writer.WriteString(" ")
		writer.WriteString(FormatValue(sample.Value))
		writer.WriteString("\n")
	}
}

// sortedSamples - Copy of the samples, stably sorted by numeric ifIndex.
// Samples without a numeric ifIndex go last, ordered by their labels.
func sortedSamples(samples []common.Sample) []common.Sample {
	type keyedSample struct {
		sample   common.Sample
		index    int64
		hasIndex bool
		labels   string
	}
	keyed := make([]keyedSample, len(samples))
	for i, sample := range samples {
		index, err := strconv.ParseInt(sample.Labels[common.LabelIfIndex], 10, 64)
		keyed[i] = keyedSample{
			sample:   sample,
			index:    index,
			hasIndex: err == nil,
			labels:   formatLabels(sample.Labels),
		}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		a, b := keyed[i], keyed[j]
		if a.hasIndex != b.hasIndex {
			return a.hasIndex
		}
		if a.hasIndex {
			return a.index < b.index
		}
		return a.labels < b.labels
	})

	sorted := make([]common.Sample, len(keyed))
	for i, entry := range keyed {
		sorted[i] = entry.sample
	}
	return sorted
}

// formatLabels - Labels sorted by key in braces, empty for no labels.
func formatLabels(labels common.Labels) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for key := range labels {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, key := range keys {
		pairs[i] = key + `="` + labelValueEscaper.Replace(labels[key]) + `"`
	}
	return "{" + strings.Join(pairs, ",") + "}"
}

// FormatValue - Sample value in the notation of the original exporter: integral values keep a
// ".0" suffix and exponent notation is only used outside [1e-4, 1e16).
func FormatValue(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "+Inf"
	case math.IsInf(value, -1):
		return "-Inf"
	}

	magnitude := math.Abs(value)
	if magnitude != 0 && (magnitude < 1e-4 || magnitude >= 1e16) {
		return strconv.FormatFloat(value, 'e', -1, 64)
	}
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}
