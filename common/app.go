package common

// Application identity, shown on the info page and in the exporter info metric.
const (
	AppName    = "sodola-exporter"
	AppVersion = "0.1.0"
	AppAuthor  = "HON"
)

// HealthServiceName - Service name reported by the health endpoint.
const HealthServiceName = "sodola-http-exporter"
