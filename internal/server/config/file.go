package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/passkeeper/internal/flagx"
	"github.com/dmitrijs2005/passkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Durations accept
// both "15m" style strings and integer nanoseconds. Absent keys leave the
// current value alone.
type FileConfig struct {
	EndpointAddrGRPC     string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN          string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey            string         `json:"secret_key" yaml:"secret_key"`
	TokenLifetime        timex.Duration `json:"token_lifetime" yaml:"token_lifetime"`
	BcryptCost           int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	RateLimitWindow      timex.Duration `json:"rate_limit_window" yaml:"rate_limit_window"`
	RateLimitMaxAttempts int            `json:"rate_limit_max_attempts" yaml:"rate_limit_max_attempts"`
	KDFTime              int            `json:"kdf_time" yaml:"kdf_time"`
	KDFMemoryKiB         int            `json:"kdf_memory_kib" yaml:"kdf_memory_kib"`
	KDFThreads           int            `json:"kdf_threads" yaml:"kdf_threads"`
	LogFormat            string         `json:"log_format" yaml:"log_format"`
	LogLevel             string         `json:"log_level" yaml:"log_level"`
	S3RootUser           string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword       string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket             string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region             string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	ExportURLExpiry      timex.Duration `json:"export_url_expiry" yaml:"export_url_expiry"`
	TLSCertFile          string         `json:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile           string         `json:"tls_key_file" yaml:"tls_key_file"`
}

// parseFile loads configuration values from the file named by the -c or
// -config flag. Files ending in .yaml or .yml are decoded as YAML, anything
// else as JSON. Without the flag nothing is loaded.
func parseFile(config *Config) error {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.TokenLifetime.Duration > 0 {
		config.TokenLifetime = c.TokenLifetime.Duration
	}
	setInt(&config.BcryptCost, c.BcryptCost)
	if c.RateLimitWindow.Duration > 0 {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
	setInt(&config.RateLimitMaxAttempts, c.RateLimitMaxAttempts)
	setInt(&config.KDFTime, c.KDFTime)
	setInt(&config.KDFMemoryKiB, c.KDFMemoryKiB)
	setInt(&config.KDFThreads, c.KDFThreads)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.ExportURLExpiry.Duration > 0 {
		config.ExportURLExpiry = c.ExportURLExpiry.Duration
	}
	setString(&config.TLSCertFile, c.TLSCertFile)
	setString(&config.TLSKeyFile, c.TLSKeyFile)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
