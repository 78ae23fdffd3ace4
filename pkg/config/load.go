package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"searchops/keeper/pkg/cli"
)

// DefaultSearchPaths are tried in order when no explicit config path is
// given. The first existing file wins.
func DefaultSearchPaths() []string {
	paths := []string{"keeper.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".keeper", "config.yaml"))
	}
	paths = append(paths, filepath.Join("/etc", "keeper", "config.yaml"))
	return paths
}

// Load reads the configuration from path, or from the first existing default
// search path when path is empty. The result has defaults applied, environment
// variable overrides merged in, and has been validated.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

func findConfig() (string, error) {
	paths := DefaultSearchPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", cli.NewConfigError("config", fmt.Sprintf("no config file found; searched: %v", paths))
}

// ApplyDefaults fills in unset fields with their default values. Boolean
// connection options use pointers so "unset" and "explicitly false" stay
// distinguishable; after this call every pointer is non-nil.
func (c *Config) ApplyDefaults() {
	if c.TemplatesDir == "" {
		c.TemplatesDir = "templates"
	}
	if c.ISMPoliciesDir == "" {
		c.ISMPoliciesDir = "ism-policies"
	}
	for name, env := range c.Environments {
		if env.Port == 0 {
			env.Port = 9200
		}
		if env.UseSSL == nil {
			env.UseSSL = boolPtr(true)
		}
		if env.VerifyCerts == nil {
			env.VerifyCerts = boolPtr(true)
		}
		c.Environments[name] = env
	}
}

// Validate checks the configuration for structural errors, reporting the
// offending field as a *cli.ConfigError. It assumes ApplyDefaults has already
// run.
func (c *Config) Validate() error {
	if len(c.Environments) == 0 {
		return cli.NewConfigError("environments", "no environments configured")
	}
	for name, env := range c.Environments {
		field := "environments." + name
		if env.Host == "" {
			return cli.NewConfigError(field+".host", "host is required")
		}
		if env.Port < 1 || env.Port > 65535 {
			return cli.NewConfigError(field+".port", fmt.Sprintf("port %d out of range", env.Port))
		}
		if env.MaxRetries < 0 {
			return cli.NewConfigError(field+".max_retries", fmt.Sprintf("max_retries %d must not be negative", env.MaxRetries))
		}
		if env.BasicAuth != nil && env.AWSAuth != nil {
			return cli.NewConfigError(field, "basic_auth and aws_auth are mutually exclusive")
		}
		if env.BasicAuth != nil && env.BasicAuth.Username == "" {
			return cli.NewConfigError(field+".basic_auth", "basic_auth requires a username")
		}
		if env.AWSAuth != nil && env.AWSAuth.Region == "" {
			return cli.NewConfigError(field+".aws_auth", "aws_auth requires a region")
		}
		if env.Proxy != nil {
			if env.Proxy.Host == "" {
				return cli.NewConfigError(field+".proxy", "proxy requires a host")
			}
			if env.Proxy.Port < 1 || env.Proxy.Port > 65535 {
				return cli.NewConfigError(field+".proxy", fmt.Sprintf("proxy port %d out of range", env.Proxy.Port))
			}
		}
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
