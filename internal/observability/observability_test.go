package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContextFallsBackToNoop(t *testing.T) {
	t.Parallel()

	require.NotNil(t, FromContext(context.Background()))

	logger := zap.NewExample()
	require.Same(t, logger, FromContext(WithLogger(context.Background(), logger)))
}

func TestRequestLoggerMiddleware(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	router := chi.NewRouter()
	router.Use(InjectLoggerMiddleware(zap.New(core)))
	router.Use(RequestLoggerMiddleware())
	router.Get("/blog/{slug}", func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("rendering")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	})

	req := httptest.NewRequest(http.MethodGet, "/blog/hello?ref=feed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	entries := logs.All()
	require.Len(t, entries, 2)

	require.Equal(t, "rendering", entries[0].Message)
	require.Equal(t, "/blog/hello?ref=feed", entries[0].ContextMap()["path"])

	done := entries[1]
	require.Equal(t, "request completed", done.Message)
	require.Equal(t, zapcore.WarnLevel, done.Level)
	fields := done.ContextMap()
	require.Equal(t, "/blog/{slug}", fields["route"])
	require.EqualValues(t, http.StatusNotFound, fields["status"])
	require.EqualValues(t, len("missing"), fields["bytes"])
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	handler := InjectLoggerMiddleware(zap.New(core))(RecoveryMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestTraceMiddlewareContinuesRemoteTrace(t *testing.T) {
	t.Parallel()

	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	var seen string
	handler := TraceMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = trace.SpanContextFromContext(r.Context()).TraceID().String()
	}))

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, traceID, seen)
	require.Equal(t, traceID, rec.Header().Get(TraceIDHeader))
}

func TestSanitizeStripsControlCharacters(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/ab", SanitizeRoute("/a\x00b\n"))
	require.Equal(t, "/", SanitizeRoute(""))
	require.Len(t, SanitizeMethod("GETGETGETGETGET"), 10)
}

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("q", 100)
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "/blog/hello", want: "/blog/hello"},
		{name: "empty", in: "", want: "/"},
		{name: "short query", in: "/search?q=go&page=2", want: "/search?q=go&page=2"},
		{name: "fragment dropped", in: "/about?x=1#team", want: "/about?x=1"},
		{name: "empty query", in: "/about?", want: "/about"},
		{name: "long query cut", in: "/search?" + long, want: "/search?" + long[:maxQueryLength] + "..."},
		{name: "control characters", in: "/a\nb?c=\x00d", want: "/ab?c=d"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, SanitizePath(tc.in))
		})
	}
}
