package model

// HealthStatus is the outcome of a backend health probe.
type HealthStatus string

const (
	Connected    HealthStatus = "CONNECTED"
	Disconnected HealthStatus = "DISCONNECTED"
)
