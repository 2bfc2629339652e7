// Package config handles configuration for the ledger server: defaults,
// an optional JSON overlay and command-line flags, in that order.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// Config holds runtime settings for the ledger server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC API.
//   - EndpointAddrHTTP: bind address for status, health and metrics.
//   - DatabaseDSN: postgres:// (pgx) or sqlite:// DSN.
//   - SecretKey: HMAC secret that access tokens are signed with (HS256).
//   - AssetID: the staked and rewarded asset; fixed at initialization.
//   - S3*: object storage for the event archive. An empty bucket disables it.
//   - ArchiveSchedule: cron spec of the archive job.
type Config struct {
	EndpointAddrGRPC string `validate:"required,hostname_port"`
	EndpointAddrHTTP string `validate:"required,hostname_port"`
	DatabaseDSN      string `validate:"required"`
	SecretKey        string `validate:"required,min=8"`
	AssetID          string `validate:"required,max=64"`

	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string `validate:"required_with=S3Bucket"`
	S3BaseEndpoint string `validate:"omitempty,url"`

	ArchiveSchedule  string `validate:"required"`
	ArchiveBatchSize int    `validate:"gt=0,lte=10000"`

	ShutdownTimeout time.Duration `validate:"gt=0"`

	LogFile  string
	LogLevel string `validate:"oneof=debug info warn error"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":3200"
	c.EndpointAddrHTTP = ":3201"
	c.DatabaseDSN = "sqlite://lockstake.db"
	c.SecretKey = "development-secret"
	c.AssetID = "LOCK"
	c.S3Region = "us-east-1"
	c.ArchiveSchedule = "@every 1h"
	c.ArchiveBatchSize = 500
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// ArchiveEnabled reports whether an archive bucket is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

var validate = validator.New()

// Validate checks field constraints and the archive schedule.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cron.ParseStandard(c.ArchiveSchedule); err != nil {
		return fmt.Errorf("invalid config: archive schedule: %w", err)
	}
	return nil
}

// Load builds a Config from args (without the program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
