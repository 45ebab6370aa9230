package common

import (
	"sort"
)

// MetricType - Prometheus metric type as written on TYPE lines.
type MetricType string

// Metric types used by the exporter.
const (
	MetricTypeGauge   MetricType = "gauge"
	MetricTypeCounter MetricType = "counter"
)

// Descriptor - HELP and TYPE of a metric family.
type Descriptor struct {
	Name string
	Help string
	Type MetricType
}

// Labels - Label set of a sample. Not modified after being added to a catalog.
type Labels map[string]string

// Sample - One value of a metric family.
type Sample struct {
	Name   string
	Labels Labels
	Value  float64
}

// Catalog - Metric samples grouped by family name, in insertion order within each family.
// A catalog is owned by a single scrape and is not safe for concurrent use.
type Catalog struct {
	families    map[string][]Sample
	descriptors map[string]Descriptor
}

// NewCatalog - Create an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		families:    make(map[string][]Sample),
		descriptors: make(map[string]Descriptor),
	}
}

// Add - Append a sample to the family of the given name.
func (catalog *Catalog) Add(name string, labels Labels, value float64) {
	catalog.families[name] = append(catalog.families[name], Sample{
		Name:   name,
		Labels: labels,
		Value:  value,
	})
}

// Describe - Register HELP/TYPE for a family not covered by the fixed interface table.
func (catalog *Catalog) Describe(descriptor Descriptor) {
	catalog.descriptors[descriptor.Name] = descriptor
}

// Descriptor - Registered descriptor of a family, if any.
func (catalog *Catalog) Descriptor(name string) (Descriptor, bool) {
	descriptor, found := catalog.descriptors[name]
	return descriptor, found
}

// Family - Samples of a family, nil if absent.
func (catalog *Catalog) Family(name string) []Sample {
	return catalog.families[name]
}

// Names - Names of all non-empty families, sorted.
func (catalog *Catalog) Names() []string {
	names := make([]string, 0, len(catalog.families))
	for name, samples := range catalog.families {
		if len(samples) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Len - Total number of samples.
func (catalog *Catalog) Len() int {
	count := 0
	for _, samples := range catalog.families {
		count += len(samples)
	}
	return count
}

// Merge - Append all samples of other to this catalog. Descriptors already present are kept.
func (catalog *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for name, samples := range other.families {
		catalog.families[name] = append(catalog.families[name], samples...)
	}
	for name, descriptor := range other.descriptors {
		if _, found := catalog.descriptors[name]; !found {
			catalog.descriptors[name] = descriptor
		}
	}
}
