package telemetry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/lingo/internal/adapters/telemetry"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/lingo/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_Attributes(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer(telemetry.NewProvider(sr).Tracer("test"))

	_, span := tracer.Start(t.Context(), "fetch foo")
	span.SetAttribute("name", "foo")
	span.SetAttribute("count", 3)
	span.SetAttribute("size", int64(42))
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("cached", true)
	span.SetAttribute("deps", []string{"a", "b"})
	span.SetAttribute("other", struct{ X int }{X: 1})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "fetch foo", spans[0].Name())
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("name", "foo"),
		attribute.Int("count", 3),
		attribute.Int64("size", 42),
		attribute.Float64("ratio", 0.5),
		attribute.Bool("cached", true),
		attribute.StringSlice("deps", []string{"a", "b"}),
		attribute.String("other", "{1}"),
	}, spans[0].Attributes())
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer(telemetry.NewProvider(sr).Tracer("test"))

	_, span := tracer.Start(t.Context(), "configure main")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	assert.Len(t, spans[0].Events(), 1)
}

func TestBridge_ReportsSummaries(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("✓ resolved 2 packages").Times(1)

	tracer := telemetry.NewOTelTracer(telemetry.NewProvider(telemetry.NewBridge(log)).Tracer("test"))

	_, plain := tracer.Start(t.Context(), "fetch foo")
	plain.End()

	_, summarized := tracer.Start(t.Context(), "resolve")
	summarized.SetAttribute(ports.SummaryAttribute, "resolved 2 packages")
	summarized.End()

	_, failed := tracer.Start(t.Context(), "compile")
	failed.SetAttribute(ports.SummaryAttribute, "compiled 1 target")
	failed.RecordError(errors.New("boom"))
	failed.End()
}

func TestNoOpTracer(t *testing.T) {
	ctx, span := telemetry.NewNoOpTracer().Start(t.Context(), "anything")
	assert.Equal(t, t.Context(), ctx)

	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}
