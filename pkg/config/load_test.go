package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"searchops/keeper/pkg/cli"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keeper.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
environments:
  qa:
    host: qa.search.internal
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	env := cfg.Environments["qa"]
	if env.Port != 9200 {
		t.Errorf("default port = %d, want 9200", env.Port)
	}
	if env.UseSSL == nil || !*env.UseSSL {
		t.Error("use_ssl should default to true")
	}
	if env.VerifyCerts == nil || !*env.VerifyCerts {
		t.Error("verify_certs should default to true")
	}
	if cfg.TemplatesDir != "templates" {
		t.Errorf("templates_dir = %q, want %q", cfg.TemplatesDir, "templates")
	}
	if cfg.ISMPoliciesDir != "ism-policies" {
		t.Errorf("ism_policies_dir = %q, want %q", cfg.ISMPoliciesDir, "ism-policies")
	}
}

func TestLoadKeepsExplicitFalse(t *testing.T) {
	path := writeConfig(t, `
environments:
  local:
    host: localhost
    port: 9201
    use_ssl: false
    verify_certs: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	env := cfg.Environments["local"]
	if env.UseSSL == nil || *env.UseSSL {
		t.Error("explicit use_ssl: false must survive defaulting")
	}
	if env.VerifyCerts == nil || *env.VerifyCerts {
		t.Error("explicit verify_certs: false must survive defaulting")
	}
	if env.Port != 9201 {
		t.Errorf("port = %d, want 9201", env.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "environments: [not a map")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no environments",
			mutate:  func(c *Config) { c.Environments = nil },
			wantErr: "no environments",
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { mutateEnv(c, func(e *Environment) { e.Host = "" }) },
			wantErr: "host is required",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { mutateEnv(c, func(e *Environment) { e.Port = 70000 }) },
			wantErr: "out of range",
		},
		{
			name:    "negative max_retries",
			mutate:  func(c *Config) { mutateEnv(c, func(e *Environment) { e.MaxRetries = -1 }) },
			wantErr: "must not be negative",
		},
		{
			name: "conflicting auth",
			mutate: func(c *Config) {
				mutateEnv(c, func(e *Environment) {
					e.BasicAuth = &BasicAuth{Username: "u"}
					e.AWSAuth = &AWSAuth{Region: "eu-west-1"}
				})
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "aws auth without region",
			mutate: func(c *Config) {
				mutateEnv(c, func(e *Environment) { e.AWSAuth = &AWSAuth{} })
			},
			wantErr: "requires a region",
		},
		{
			name: "proxy without host",
			mutate: func(c *Config) {
				mutateEnv(c, func(e *Environment) { e.Proxy = &Proxy{Port: 1080} })
			},
			wantErr: "proxy requires a host",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
			var cfgErr *cli.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("validation error is %T, want *cli.ConfigError", err)
			}
		})
	}
}

func TestLoadValidationErrorType(t *testing.T) {
	path := writeConfig(t, `
environments:
  qa:
    port: 9200
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for missing host")
	}
	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error is %T, want *cli.ConfigError in chain", err)
	}
	if cfgErr.Field != "environments.qa.host" {
		t.Errorf("Field = %q, want environments.qa.host", cfgErr.Field)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KEEPER_TEMPLATES_DIR", "/srv/templates")
	t.Setenv("KEEPER_ENVIRONMENTS_QA_HOST", "qa2.search.internal")
	t.Setenv("KEEPER_ENVIRONMENTS_QA_PASSWORD", "secret")

	path := writeConfig(t, `
environments:
  qa:
    host: qa.search.internal
    basic_auth:
      username: admin
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.TemplatesDir != "/srv/templates" {
		t.Errorf("templates_dir = %q, want override", cfg.TemplatesDir)
	}
	env := cfg.Environments["qa"]
	if env.Host != "qa2.search.internal" {
		t.Errorf("host = %q, want override", env.Host)
	}
	if env.BasicAuth == nil || env.BasicAuth.Password != "secret" {
		t.Error("password override not applied")
	}
	if env.BasicAuth.Username != "admin" {
		t.Errorf("username = %q, want file value preserved", env.BasicAuth.Username)
	}
}

func validConfig() *Config {
	cfg := &Config{
		Environments: map[string]Environment{
			"qa": {Host: "qa.search.internal"},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func mutateEnv(c *Config, f func(*Environment)) {
	env := c.Environments["qa"]
	f(&env)
	c.Environments["qa"] = env
}
