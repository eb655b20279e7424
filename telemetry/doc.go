// Package telemetry groups prealloc.MetricsCollector implementations for
// external monitoring systems.
//
//   - telemetry/prom exports to a Prometheus registry.
//   - telemetry/otelmetric records through an OpenTelemetry meter.
//
// Both are safe for concurrent use and can be shared by any number of
// Arrays.
package telemetry
