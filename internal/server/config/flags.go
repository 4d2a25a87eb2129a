package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/flagx"
)

var flagNames = []string{
	"-a", "-d", "-s", "-t", "-u", "-p", "-b", "-g", "-e",
	"-bcrypt-cost", "-rate-window", "-rate-max",
	"-kdf-time", "-kdf-memory", "-kdf-threads",
	"-log-format", "-log-level",
	"-tls-cert", "-tls-key",
}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        gRPC bind address (e.g., ":50051")
//	-d string        database DSN
//	-s string        token HMAC secret key
//	-t int           token lifetime, minutes
//	-u string        S3 root user
//	-p string        S3 root password
//	-b string        S3 bucket name
//	-g string        S3 region
//	-e string        S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-bcrypt-cost int
//	-rate-window duration
//	-rate-max int
//	-kdf-time int
//	-kdf-memory int  KiB
//	-kdf-threads int
//	-log-format string
//	-log-level string
//	-tls-cert string PEM certificate for the gRPC endpoint
//	-tls-key string  PEM private key for the gRPC endpoint
//
// os.Args is first filtered with flagx.FilterArgs so flags meant for other
// components do not trip the parser.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], flagNames)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenLifetime := fs.Int("t", int(config.TokenLifetime.Minutes()), "token lifetime (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket, empty disables export")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.IntVar(&config.BcryptCost, "bcrypt-cost", config.BcryptCost, "bcrypt cost")
	fs.DurationVar(&config.RateLimitWindow, "rate-window", config.RateLimitWindow, "auth rate limit window")
	fs.IntVar(&config.RateLimitMaxAttempts, "rate-max", config.RateLimitMaxAttempts, "auth attempts per window")
	fs.IntVar(&config.KDFTime, "kdf-time", config.KDFTime, "argon2 passes")
	fs.IntVar(&config.KDFMemoryKiB, "kdf-memory", config.KDFMemoryKiB, "argon2 memory (KiB)")
	fs.IntVar(&config.KDFThreads, "kdf-threads", config.KDFThreads, "argon2 lanes")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format: json, text or zerolog")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.TLSCertFile, "tls-cert", config.TLSCertFile, "TLS certificate file")
	fs.StringVar(&config.TLSKeyFile, "tls-key", config.TLSKeyFile, "TLS key file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.TokenLifetime = time.Duration(*tokenLifetime) * time.Minute
	return nil
}
