package metrics

import "time"

// Provider abstracts the metrics backend so services and middleware stay free
// of prometheus imports.
type Provider interface {
	IncrementHTTPRequests(method, path, status string)
	RecordHTTPRequestDuration(method, path string, duration time.Duration)

	IncrementCacheHits()
	IncrementCacheMisses()
	RecordCacheOperationDuration(operation string, duration time.Duration)

	IncrementPostOperations(operation string, success bool)
	IncrementAuthOperations(operation string, success bool)
	IncrementRateLimitRejections()

	SetServiceHealth(healthy bool)
}
