package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestSetupTracing_Stdout(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	config := TracerConfig{
		ServiceName:    "dotnetproj-test",
		ServiceVersion: "1.0.0",
		ExporterType:   ExporterStdout,
		Output:         &out,
		SamplingRate:   1.0,
	}

	tp, err := SetupTracing(ctx, config)
	if err != nil {
		t.Fatalf("SetupTracing() failed: %v", err)
	}

	_, span := startSpan(ctx, "test-operation", attribute.String("test.key", "test.value"))
	span.End()

	if err := ShutdownTracing(ctx, tp); err != nil {
		t.Fatalf("ShutdownTracing() failed: %v", err)
	}

	if !strings.Contains(out.String(), "test-operation") {
		t.Errorf("stdout exporter output missing span name: %s", out.String())
	}
}

func TestSetupTracing_None(t *testing.T) {
	ctx := context.Background()
	config := TracerConfig{
		ServiceName:  "dotnetproj-test",
		ExporterType: ExporterNone,
	}

	tp, err := SetupTracing(ctx, config)
	if err != nil {
		t.Fatalf("SetupTracing() with none exporter failed: %v", err)
	}
	if err := ShutdownTracing(ctx, tp); err != nil {
		t.Errorf("ShutdownTracing() failed: %v", err)
	}
}

func TestSetupTracing_InvalidExporter(t *testing.T) {
	_, err := SetupTracing(context.Background(), TracerConfig{ServiceName: "dotnetproj-test", ExporterType: "invalid"})
	if err == nil {
		t.Error("SetupTracing with invalid exporter should return error")
	}
}

func TestSetupTracing_OTLPRequiresEndpoint(t *testing.T) {
	_, err := SetupTracing(context.Background(), TracerConfig{ServiceName: "dotnetproj-test", ExporterType: ExporterOTLP})
	if err == nil {
		t.Error("SetupTracing with otlp and no endpoint should return error")
	}
}

func TestSpanHelpers(t *testing.T) {
	ctx := context.Background()
	tp, err := SetupTracing(ctx, DefaultTracerConfig())
	if err != nil {
		t.Fatalf("SetupTracing() failed: %v", err)
	}
	defer func() {
		if err := ShutdownTracing(ctx, tp); err != nil {
			t.Errorf("ShutdownTracing() failed: %v", err)
		}
	}()

	ctx, span := startSpan(ctx, "test-span", attribute.Int("dotnet.project.count", 3))
	defer span.End()

	retrieved := SpanFromContext(ctx)
	if !retrieved.SpanContext().IsValid() {
		t.Error("SpanFromContext should return a valid span")
	}
	if retrieved.SpanContext().TraceID() != span.SpanContext().TraceID() {
		t.Error("SpanFromContext should return span with same TraceID")
	}
}

func TestDefaultTracerConfig(t *testing.T) {
	config := DefaultTracerConfig()

	if config.ServiceName != "dotnetproj" {
		t.Errorf("Expected ServiceName=dotnetproj, got %s", config.ServiceName)
	}
	if config.ExporterType != ExporterNone {
		t.Errorf("Expected ExporterType=none, got %s", config.ExporterType)
	}
	if config.SamplingRate != 1.0 {
		t.Errorf("Expected SamplingRate=1.0, got %f", config.SamplingRate)
	}
}
