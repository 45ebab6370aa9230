package exposition

import "dev.hon.one/sodola/common"

// InterfaceDescriptors - Interface families in emission order, matching the SNMP exporter's
// if_mib output so existing dashboards and diffs keep working.
// The octet counters are estimates (see the port statistics extractor), the HELP texts are
// kept identical to the MIB ones on purpose.
var InterfaceDescriptors = []common.Descriptor{
	{
		Name: common.MetricIfAdminStatus,
		Help: "The desired state of the interface (1=up, 2=down)",
		Type: common.MetricTypeGauge,
	},
	{
		Name: common.MetricIfOperStatus,
		Help: "The current operational state of the interface (1=up, 2=down)",
		Type: common.MetricTypeGauge,
	},
	{
		Name: common.MetricIfSpeed,
		Help: "An estimate of the interface current bandwidth in bits per second",
		Type: common.MetricTypeGauge,
	},
	{
		Name: common.MetricIfHighSpeed,
		Help: "An estimate of the interface current bandwidth in units of 1,000,000 bits per second",
		Type: common.MetricTypeGauge,
	},
	{
		Name: common.MetricIfDuplex,
		Help: "The duplex mode of the interface (2=half-duplex, 3=full-duplex)",
		Type: common.MetricTypeGauge,
	},
	{
		Name: common.MetricIfHCInOctets,
		Help: "The total number of octets received on the interface, including framing characters - 1.3.6.1.2.1.31.1.1.1.6",
		Type: common.MetricTypeCounter,
	},
	{
		Name: common.MetricIfHCOutOctets,
		Help: "The total number of octets transmitted out of the interface, including framing characters - 1.3.6.1.2.1.31.1.1.1.10",
		Type: common.MetricTypeCounter,
	},
	{
		Name: common.MetricIfInUcastPkts,
		Help: "The number of packets delivered by this sub-layer to a higher sub-layer which were not addressed to a multicast or broadcast address",
		Type: common.MetricTypeCounter,
	},
	{
		Name: common.MetricIfOutUcastPkts,
		Help: "The total number of packets that higher-level protocols requested be transmitted which were not addressed to a multicast or broadcast address",
		Type: common.MetricTypeCounter,
	},
	{
		Name: common.MetricIfInErrors,
		Help: "The number of inbound packets that contained errors preventing them from being deliverable",
		Type: common.MetricTypeCounter,
	},
	{
		Name: common.MetricIfOutErrors,
		Help: "The number of outbound packets that could not be transmitted because of errors",
		Type: common.MetricTypeCounter,
	},
}

// defaultHelp - HELP for families without a descriptor.
const defaultHelp = "No description available"

// interfaceDescriptor - Fixed descriptor of an interface family.
func interfaceDescriptor(name string) (common.Descriptor, bool) {
	for _, descriptor := range InterfaceDescriptors {
		if descriptor.Name == name {
			return descriptor, true
		}
	}
	return common.Descriptor{}, false
}
