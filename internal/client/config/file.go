package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/passkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the CLI configuration. Absent keys
// leave the current value alone.
type FileConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	DataDir            string         `json:"data_dir" yaml:"data_dir"`
	RequestTimeout     timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	TLS                *bool          `json:"tls" yaml:"tls"`
	TLSCAFile          string         `json:"tls_ca_file" yaml:"tls_ca_file"`
}

// LoadFile overlays c with values from path. Files ending in .yaml or .yml
// are decoded as YAML, anything else as JSON.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.ServerEndpointAddr != "" {
		c.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.DataDir != "" {
		c.DataDir = fc.DataDir
	}
	if fc.RequestTimeout.Duration > 0 {
		c.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.TLS != nil {
		c.TLS = *fc.TLS
	}
	if fc.TLSCAFile != "" {
		c.TLSCAFile = fc.TLSCAFile
		c.TLS = true
	}
	return nil
}
