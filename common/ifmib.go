package common

// Interface-MIB style metric names produced by the port extractors.
const (
	MetricIfAdminStatus  = "ifAdminStatus"
	MetricIfOperStatus   = "ifOperStatus"
	MetricIfSpeed        = "ifSpeed"
	MetricIfHighSpeed    = "ifHighSpeed"
	MetricIfDuplex       = "ifDuplex"
	MetricIfHCInOctets   = "ifHCInOctets"
	MetricIfHCOutOctets  = "ifHCOutOctets"
	MetricIfInUcastPkts  = "ifInUcastPkts"
	MetricIfOutUcastPkts = "ifOutUcastPkts"
	MetricIfInErrors     = "ifInErrors"
	MetricIfOutErrors    = "ifOutErrors"
)

// Interface label keys.
const (
	LabelIfIndex = "ifIndex"
	LabelIfName  = "ifName"
	LabelIfDescr = "ifDescr"
	LabelIfAlias = "ifAlias"
)

// Interface-MIB status and duplex codes.
const (
	IfStatusUp       = 1
	IfStatusDown     = 2
	IfDuplexHalf     = 2
	IfDuplexFull     = 3
	IfHighSpeedFloor = 20 // Mbps, ifHighSpeed is only reported at or above this speed
)
