package config

import (
	"os"
	"path/filepath"
	"time"
)

// sessionFileName is the token file inside DataDir.
const sessionFileName = "session"

// userConfigDir is a test seam for os.UserConfigDir.
var userConfigDir = os.UserConfigDir

// Config holds runtime settings for the passkeeper CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - DataDir: where the session token is kept.
//   - RequestTimeout: deadline applied to each RPC.
//   - TLS: dial the server over TLS. Off by default, which sends master keys
//     in plaintext; only use that against a local server.
//   - TLSCAFile: PEM bundle trusted for the server certificate instead of the
//     system roots. Setting it turns TLS on.
type Config struct {
	ServerEndpointAddr string
	DataDir            string
	RequestTimeout     time.Duration
	TLS                bool
	TLSCAFile          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DataDir = defaultDataDir()
	c.RequestTimeout = 10 * time.Second
	c.TLS = false
	c.TLSCAFile = ""
}

// TokenPath is the file holding the current session token.
func (c *Config) TokenPath() string {
	return filepath.Join(c.DataDir, sessionFileName)
}

func defaultDataDir() string {
	dir, err := userConfigDir()
	if err != nil || dir == "" {
		return ".passkeeper"
	}
	return filepath.Join(dir, "passkeeper")
}
