package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestInitTracerProvider_Disabled(t *testing.T) {
	shutdown, err := InitTracerProvider(context.Background(), Config{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitTracerProvider_RequiresServiceName(t *testing.T) {
	_, err := InitTracerProvider(context.Background(), Config{Enabled: true})
	require.Error(t, err)
}

func TestNewSampler_FallsBackToDefaultRatio(t *testing.T) {
	require.Equal(t, newSampler(defaultSampleRatio).Description(), newSampler(0).Description())
	require.Equal(t, newSampler(defaultSampleRatio).Description(), newSampler(1.5).Description())
	require.NotEqual(t, newSampler(defaultSampleRatio).Description(), newSampler(0.5).Description())
}

func TestNewResource_Attributes(t *testing.T) {
	res := newResource(context.Background(), Config{
		ServiceName:    "github-repo-access-plugin",
		ServiceVersion: "v1.0.0",
		Attributes:     []attribute.KeyValue{attribute.String("github.api.url", "https://api.github.com/")},
	})

	name, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	require.Equal(t, "github-repo-access-plugin", name.AsString())

	api, ok := res.Set().Value("github.api.url")
	require.True(t, ok)
	require.Equal(t, "https://api.github.com/", api.AsString())
}
