package collector

// Sample is a named starting configuration for a collector distribution.
type Sample struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Config string `json:"config"`
}

// Samples lists the built-in starting configurations, default first.
func Samples() []Sample {
	return []Sample{
		{
			ID:     "otelcol",
			Name:   "OpenTelemetry Collector",
			Config: DefaultConfig,
		},
		{
			ID:   "otelcol-contrib",
			Name: "OpenTelemetry Collector Contrib",
			Config: `receivers:
  otlp:
    protocols:
      grpc:
        endpoint: 0.0.0.0:4317
      http:
        endpoint: 0.0.0.0:4318
  jaeger:
    protocols:
      grpc:
        endpoint: 0.0.0.0:14250

processors:
  batch:
  memory_limiter:
    check_interval: 1s
    limit_mib: 400

exporters:
  otlp:
    endpoint: otelcol:4317
  debug:

extensions:
  health_check:

service:
  extensions: [health_check]
  pipelines:
    traces:
      receivers: [otlp, jaeger]
      processors: [memory_limiter, batch]
      exporters: [otlp]
    metrics:
      receivers: [otlp]
      processors: [memory_limiter, batch]
      exporters: [otlp, debug]
`,
		},
		{
			ID:   "spanmetrics",
			Name: "Span metrics via connector",
			Config: `receivers:
  otlp:
    protocols:
      grpc:
        endpoint: 0.0.0.0:4317

processors:
  batch:

exporters:
  otlp:
    endpoint: otelcol:4317

connectors:
  spanmetrics:

service:
  pipelines:
    traces:
      receivers: [otlp]
      processors: [batch]
      exporters: [spanmetrics]
    metrics:
      receivers: [spanmetrics]
      exporters: [otlp]
`,
		},
	}
}
