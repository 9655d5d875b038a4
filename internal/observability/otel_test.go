package observability

import (
	"context"
	"reflect"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestParseOTLPHeaders(t *testing.T) {
	cases := []struct {
		raw  string
		want map[string]string
	}{
		{"", nil},
		{"  ", nil},
		{"api-key=abc", map[string]string{"api-key": "abc"}},
		{" a = 1 , b=2,broken, =x, y= ", map[string]string{"a": "1", "b": "2"}},
		{"auth=Bearer x=y", map[string]string{"auth": "Bearer x=y"}},
	}
	for _, tc := range cases {
		if got := ParseOTLPHeaders(tc.raw); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParseOTLPHeaders(%q): got=%v want=%v", tc.raw, got, tc.want)
		}
	}
}

func TestTracingConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLER_PERCENT", "250")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")

	cfg := TracingConfigFromEnv(nil)
	if !cfg.Enabled || cfg.Endpoint != "collector:4318" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.SampleRatio != 1 {
		t.Fatalf("sample ratio should clamp to 1, got=%v", cfg.SampleRatio)
	}
	if cfg.ServiceName != DefaultServiceName {
		t.Fatalf("service name default: got=%q", cfg.ServiceName)
	}
}

func TestInitTracingDisabled(t *testing.T) {
	before := otel.GetTracerProvider()
	shutdown, err := InitTracing(context.Background(), nil, TracingConfig{})
	if err != nil || shutdown == nil {
		t.Fatalf("disabled tracing: shutdown!=nil=%t err=%v", shutdown != nil, err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
	if otel.GetTracerProvider() != before {
		t.Fatalf("disabled tracing must not replace the global provider")
	}
}

func TestInitTracingWithoutExporter(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), nil, TracingConfig{Enabled: true, SampleRatio: 1})
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	if !span.SpanContext().HasTraceID() || !span.SpanContext().IsSampled() {
		t.Fatalf("expected a sampled span with a trace id")
	}
}
