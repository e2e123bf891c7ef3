package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the conferencia service.
type Config struct {
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Lookup      LookupConfig
	Report      ReportConfig
	Audit       AuditConfig
	Tracing     TracingConfig
}

type HTTPConfig struct {
	Addr            string
	ScanRateLimit   int
	ScanRateWindow  time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	// Driver is either "sqlite" or "postgres".
	Driver string
	DSN    string
}

// LookupConfig selects the invoice lookup backend.
type LookupConfig struct {
	// Mode is either "fixture" (demo dataset behind a simulated delay) or
	// "database".
	Mode     string
	Delay    time.Duration
	CacheTTL time.Duration
}

type ReportConfig struct {
	OutputDir string
}

type AuditConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

type TracingConfig struct {
	Enabled          bool
	ServiceName      string
	ServiceVersion   string
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load reads configuration from the environment with CONFERENCIA_ prefix.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CONFERENCIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.scan_rate_limit", 30)
	v.SetDefault("http.scan_rate_window", "1s")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:conferencia.db?cache=shared")
	v.SetDefault("lookup.mode", "fixture")
	v.SetDefault("lookup.delay", "1500ms")
	v.SetDefault("lookup.cache_ttl", "5m")
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("audit.batch_size", 50)
	v.SetDefault("audit.poll_interval", "2s")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "conferencia")
	v.SetDefault("tracing.service_version", "dev")
	v.SetDefault("tracing.exporter_endpoint", "localhost:4318")
	v.SetDefault("tracing.exporter_protocol", "http")
	v.SetDefault("tracing.sampling_ratio", 1.0)

	cfg := Config{
		Environment: v.GetString("environment"),
		HTTP: HTTPConfig{
			Addr:            v.GetString("http.addr"),
			ScanRateLimit:   v.GetInt("http.scan_rate_limit"),
			ScanRateWindow:  v.GetDuration("http.scan_rate_window"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("database.driver")),
			DSN:    v.GetString("database.dsn"),
		},
		Lookup: LookupConfig{
			Mode:     strings.ToLower(v.GetString("lookup.mode")),
			Delay:    v.GetDuration("lookup.delay"),
			CacheTTL: v.GetDuration("lookup.cache_ttl"),
		},
		Report: ReportConfig{
			OutputDir: v.GetString("report.output_dir"),
		},
		Audit: AuditConfig{
			BatchSize:    v.GetInt("audit.batch_size"),
			PollInterval: v.GetDuration("audit.poll_interval"),
		},
		Tracing: TracingConfig{
			Enabled:          v.GetBool("tracing.enabled"),
			ServiceName:      v.GetString("tracing.service_name"),
			ServiceVersion:   v.GetString("tracing.service_version"),
			ExporterEndpoint: v.GetString("tracing.exporter_endpoint"),
			ExporterProtocol: v.GetString("tracing.exporter_protocol"),
			SamplingRatio:    v.GetFloat64("tracing.sampling_ratio"),
		},
	}
	return cfg, nil
}
