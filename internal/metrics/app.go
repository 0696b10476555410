package metrics

import (
	"time"

	"github.com/domaingen/domaingen/internal/observability"
)

// Application-level metrics following Prometheus conventions
var (
	// Facade operations (items, save_item, delete_item, generate_domains, generate_domain)
	OperationsTotal       = "app_operations_total"
	OperationsErrorsTotal = "app_operations_errors_total"

	// Availability checks
	DomainChecksTotal   = "domain_checks_total"
	DomainCheckDuration = "domain_check_duration_ms"
	CandidatesGenerated = "domain_candidates_generated_total"

	// Health check metrics
	HealthCheckTotal    = "app_health_check_total"
	HealthCheckDuration = "app_health_check_duration_ms"

	// Server lifecycle metrics
	ServerStartTime = "app_server_start_time_seconds"
)

// RecordOperation records a facade operation with status
func RecordOperation(operation string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			OperationsTotal,
			1,
			map[string]string{
				"operation": operation,
				"status":    status,
			},
		)
	}
}

// RecordOperationError records a facade operation error
func RecordOperationError(operation string, errorType string) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			OperationsErrorsTotal,
			1,
			map[string]string{
				"operation":  operation,
				"error_type": errorType,
			},
		)
	}
}

// RecordDomainCheck records one availability lookup and its outcome.
func RecordDomainCheck(available bool, duration time.Duration) {
	result := "taken"
	if available {
		result = "available"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			DomainChecksTotal,
			1,
			map[string]string{"result": result},
		)
		_ = observability.TelemetrySystem.Histogram(
			DomainCheckDuration,
			duration,
			map[string]string{"result": result},
		)
	}
}

// RecordCandidates records how many candidates a generator mode produced.
func RecordCandidates(mode string, count int) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			CandidatesGenerated,
			float64(count),
			map[string]string{"mode": mode},
		)
	}
}

// RecordHealthCheck records a health check execution
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			HealthCheckTotal,
			1,
			map[string]string{
				"check":  checkName,
				"status": status,
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			HealthCheckDuration,
			duration,
			map[string]string{
				"check": checkName,
			},
		)
	}
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerStartTime,
			float64(timestamp),
			nil,
		)
	}
}
