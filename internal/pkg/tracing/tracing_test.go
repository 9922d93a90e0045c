package tracing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"orderservice/internal/pkg/tracing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestInit(t *testing.T) {
	t.Run("should record spans without an exporter", func(t *testing.T) {
		shutdown, err := tracing.Init(t.Context(), tracing.Config{ServiceName: "orderservice", SampleRate: 1})
		require.NoError(t, err)
		defer func() { assert.NoError(t, shutdown(t.Context())) }()

		var seen trace.SpanContext
		handler := tracing.WrapHandler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = trace.SpanContextFromContext(r.Context())
		}), "test")

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.True(t, seen.HasTraceID())
		assert.True(t, seen.IsSampled())
	})
}
