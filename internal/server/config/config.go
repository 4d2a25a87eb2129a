// Package config handles configuration for the server component,
// including defaults, a JSON or YAML file overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the passkeeper server. All values are
// read once at startup.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDSN: storage backend, one of postgres://, sqlite://, memory://.
//   - SecretKey: HMAC secret for signing session tokens (HS256). When empty a
//     random key is generated per process.
//   - TokenLifetime: session token validity.
//   - BcryptCost: work factor for account hashes.
//   - RateLimitWindow / RateLimitMaxAttempts: auth brute-force throttling.
//   - KDFTime / KDFMemoryKiB / KDFThreads: Argon2id parameters for new
//     credential ciphertexts.
//   - LogFormat / LogLevel: logger backend ("json", "text", "zerolog") and level.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings. An empty
//     bucket disables vault export.
//   - ExportURLExpiry: lifetime of presigned export download links.
//   - TLSCertFile / TLSKeyFile: PEM certificate and key for the gRPC endpoint.
//     Both empty serves plaintext.
type Config struct {
	EndpointAddrGRPC     string
	DatabaseDSN          string
	SecretKey            string
	TokenLifetime        time.Duration
	BcryptCost           int
	RateLimitWindow      time.Duration
	RateLimitMaxAttempts int
	KDFTime              int
	KDFMemoryKiB         int
	KDFThreads           int
	LogFormat            string
	LogLevel             string
	S3RootUser           string
	S3RootPassword       string
	S3Bucket             string
	S3Region             string
	S3BaseEndpoint       string
	ExportURLExpiry      time.Duration
	TLSCertFile          string
	TLSKeyFile           string
}

// LoadDefaults populates Config with development defaults. Storage is
// in-memory and export is disabled.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "memory://"
	c.SecretKey = ""
	c.TokenLifetime = 24 * time.Hour
	c.BcryptCost = 10
	c.RateLimitWindow = 15 * time.Minute
	c.RateLimitMaxAttempts = 5
	c.KDFTime = 1
	c.KDFMemoryKiB = 64 * 1024
	c.KDFThreads = 4
	c.LogFormat = "json"
	c.LogLevel = "info"
	c.S3RootUser = ""
	c.S3RootPassword = ""
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.ExportURLExpiry = 15 * time.Minute
	c.TLSCertFile = ""
	c.TLSKeyFile = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TLSEnabled reports whether the endpoint serves TLS.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" || c.TLSKeyFile != ""
}

// ExportEnabled reports whether vault export has somewhere to write.
func (c *Config) ExportEnabled() bool {
	return c.S3Bucket != ""
}
