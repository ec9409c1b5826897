package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Fl0rencess720/repoaccess/pkg/common/conf"
	"github.com/Fl0rencess720/repoaccess/pkg/common/logging"
	"github.com/Fl0rencess720/repoaccess/pkg/common/observability"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin/config"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const serviceVersion = "v1.0.0"

func init() {
	logging.Init()
}

func githubAPIURL(baseURL string) string {
	if baseURL == "" {
		return "https://api.github.com/"
	}
	return baseURL
}

func main() {
	port := flag.String("port", "8000", "Plugin server port")
	flag.Parse()

	if err := conf.Init(); err != nil {
		zap.L().Fatal("Load config failed", zap.Error(err))
	}

	// 绑定环境变量
	viper.SetEnvPrefix("ra")

	_ = viper.BindEnv("github.token", "GITHUB_TOKEN")
	_ = viper.BindEnv("github.base_url", "RA_GITHUB_BASE_URL")
	_ = viper.BindEnv("manifest.path", "RA_MANIFEST_PATH")
	_ = viper.BindEnv("service.name", "RA_SERVICE_NAME")
	_ = viper.BindEnv("log.level", "RA_LOG_LEVEL")
	_ = viper.BindEnv("log.file", "RA_LOG_FILE")
	_ = viper.BindEnv("otel.enabled", "RA_OTEL_ENABLED")
	_ = viper.BindEnv("otel.endpoint", "RA_OTEL_EXPORTER_OTLP_ENDPOINT")
	_ = viper.BindEnv("otel.insecure", "RA_OTEL_EXPORTER_OTLP_INSECURE")
	_ = viper.BindEnv("otel.sample_ratio", "RA_OTEL_TRACES_SAMPLE_RATIO")

	viper.SetDefault("github.base_url", "")
	viper.SetDefault("manifest.path", "manifest.json")
	viper.SetDefault("service.name", "github-repo-access-plugin")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.endpoint", "otel-collector:4317")
	viper.SetDefault("otel.insecure", true)
	viper.SetDefault("otel.sample_ratio", 0.1)

	logging.Init(
		logging.WithLevel(viper.GetString("log.level")),
		logging.WithFile(viper.GetString("log.file")),
	)

	otelShutdown, err := observability.InitTracerProvider(context.Background(), observability.Config{
		Enabled:        viper.GetBool("otel.enabled"),
		ServiceName:    viper.GetString("service.name"),
		ServiceVersion: serviceVersion,
		Endpoint:       viper.GetString("otel.endpoint"),
		Insecure:       viper.GetBool("otel.insecure"),
		SampleRatio:    viper.GetFloat64("otel.sample_ratio"),
		Attributes: []attribute.KeyValue{
			attribute.String("github.api.url", githubAPIURL(viper.GetString("github.base_url"))),
			attribute.String("plugin.manifest.path", viper.GetString("manifest.path")),
		},
	})
	if err != nil {
		zap.L().Fatal("Initialize tracing failed", zap.Error(err))
		return
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := otelShutdown(shutdownCtx); shutdownErr != nil {
			zap.L().Warn("Shutdown tracer provider failed", zap.Error(shutdownErr))
		}
	}()

	cfg := &config.Config{
		Port:           *port,
		ServiceName:    viper.GetString("service.name"),
		ServiceVersion: serviceVersion,
		GitHubToken:    viper.GetString("github.token"),
		GitHubBaseURL:  viper.GetString("github.base_url"),
		ManifestPath:   viper.GetString("manifest.path"),
	}

	server, err := plugin.NewServer(cfg)
	if err != nil {
		zap.L().Fatal("New Server failed", zap.Error(err))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer logging.Sync(zap.L())

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		zap.L().Info("Received shutdown signal, shutting down gracefully...")
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("Server shutdown error", zap.Error(err))
		}
		zap.L().Info("Server shutdown complete.")
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			zap.L().Info("Server shutdown complete.")
			return
		}
		zap.L().Fatal("Server error", zap.Error(err))
	}
}
