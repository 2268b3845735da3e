package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{Name: "posts-gateway", Version: "1.0.0", Environment: "test"},
		Server: ServerConfig{
			Port:            8080,
			Host:            "127.0.0.1",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     time.Minute,
			ShutdownTimeout: 5 * time.Second,
			MaxRequestSize:  DefaultMaxRequestSize,
		},
		Log: LogConfig{Level: "debug", Format: "pretty"},
		Client: ClientConfig{
			Timeout: 2 * time.Second,
			Transport: TransportConfig{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		Services: ServicesConfig{
			Posts:    ServiceEndpointConfig{BaseURL: DefaultPostsURL, Name: "posts-api"},
			Comments: ServiceEndpointConfig{BaseURL: DefaultCommentsURL, Name: "comments-api"},
		},
	}
}

func TestValidate_Accepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "baseline", mutate: func(*Config) {}},
		{name: "prod environment", mutate: func(c *Config) { c.App.Environment = "prod" }},
		{name: "trace level", mutate: func(c *Config) { c.Log.Level = "trace" }},
		{name: "text format", mutate: func(c *Config) { c.Log.Format = "text" }},
		{name: "highest port", mutate: func(c *Config) { c.Server.Port = 65535 }},
		{name: "file sink", mutate: func(c *Config) {
			c.Log.File = LogFileConfig{Enabled: true, Path: "/var/log/posts-gateway.log", MaxSizeMB: 50}
		}},
		{name: "file path unused when disabled", mutate: func(c *Config) { c.Log.File.Path = "" }},
		{name: "telemetry", mutate: func(c *Config) {
			c.Telemetry = TelemetryConfig{Enabled: true, Endpoint: "http://otel-collector:4317", ServiceName: "posts-gateway", SamplingRate: 0.25}
		}},
		{name: "local upstream", mutate: func(c *Config) { c.Services.Posts.BaseURL = "http://localhost:3000/posts" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		expected string
	}{
		{name: "missing app name", mutate: func(c *Config) { c.App.Name = "" }, expected: "app.name is required"},
		{name: "unknown environment", mutate: func(c *Config) { c.App.Environment = "staging" }, expected: "app.environment must be one of: local dev qa prod test"},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, expected: "server.port is required"},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }, expected: "server.port must be at most 65535"},
		{name: "sub-second read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 200 * time.Millisecond }, expected: "server.readtimeout must be at least 1s"},
		{name: "uppercase level", mutate: func(c *Config) { c.Log.Level = "DEBUG" }, expected: "log.level must be one of"},
		{name: "xml format", mutate: func(c *Config) { c.Log.Format = "xml" }, expected: "log.format must be one of"},
		{name: "file sink without path", mutate: func(c *Config) {
			c.Log.File = LogFileConfig{Enabled: true}
		}, expected: "log.file.path is required when Enabled true"},
		{name: "oversized log file", mutate: func(c *Config) {
			c.Log.File = LogFileConfig{Enabled: true, Path: "/tmp/gw.log", MaxSizeMB: 2048}
		}, expected: "log.file.maxsizemb must be at most 1024"},
		{name: "telemetry without endpoint", mutate: func(c *Config) {
			c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "posts-gateway"}
		}, expected: "telemetry.endpoint is required when Enabled true"},
		{name: "telemetry endpoint not a url", mutate: func(c *Config) {
			c.Telemetry = TelemetryConfig{Enabled: true, Endpoint: "collector", ServiceName: "posts-gateway"}
		}, expected: "telemetry.endpoint must be a valid URL"},
		{name: "sampling above one", mutate: func(c *Config) { c.Telemetry.SamplingRate = 1.5 }, expected: "telemetry.samplingrate must be at most 1"},
		{name: "client timeout too short", mutate: func(c *Config) { c.Client.Timeout = 10 * time.Millisecond }, expected: "client.timeout must be at least 100ms"},
		{name: "missing posts url", mutate: func(c *Config) { c.Services.Posts.BaseURL = "" }, expected: "services.posts.baseurl is required"},
		{name: "comments url without scheme", mutate: func(c *Config) {
			c.Services.Comments.BaseURL = "jsonplaceholder.typicode.com/comments"
		}, expected: "services.comments.baseurl must be an http or https URL"},
		{name: "ftp posts url", mutate: func(c *Config) { c.Services.Posts.BaseURL = "ftp://example.com/posts" }, expected: "services.posts.baseurl"},
		{name: "missing comments name", mutate: func(c *Config) { c.Services.Comments.Name = "" }, expected: "services.comments.name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "staging"}, Server: ServerConfig{Port: -1}}

	err := cfg.Validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Greater(t, len(verr.Fields), 3)
	assert.Contains(t, verr.Fields, "app.name is required")
	assert.Contains(t, verr.Fields, "app.version is required")
	assert.Contains(t, err.Error(), "config validation failed:")
}

func TestFieldPath(t *testing.T) {
	tests := map[string]string{
		"Config.Server.Port":            "server.port",
		"Config.Services.Posts.BaseURL": "services.posts.baseurl",
		"Config.Log.File.Path":          "log.file.path",
		"Port":                          "port",
	}

	for namespace, expected := range tests {
		t.Run(namespace, func(t *testing.T) {
			assert.Equal(t, expected, fieldPath(namespace))
		})
	}
}
