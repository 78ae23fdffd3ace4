package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"searchops/keeper/pkg/cli"
)

func TestEnvironmentLookup(t *testing.T) {
	cfg := &Config{
		Environments: map[string]Environment{
			"qa":   {Host: "qa.search.internal"},
			"prod": {Host: "prod.search.internal"},
		},
	}

	env, err := cfg.Environment("prod")
	if err != nil {
		t.Fatalf("Environment() error: %v", err)
	}
	if env.Host != "prod.search.internal" {
		t.Errorf("host = %q, want prod.search.internal", env.Host)
	}

	_, err = cfg.Environment("staging")
	if err == nil {
		t.Fatal("expected error for unknown environment")
	}
	if !strings.Contains(err.Error(), "prod, qa") {
		t.Errorf("error %q should list available environments sorted", err)
	}
	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("unknown environment error is %T, want *cli.ConfigError", err)
	}
}

func TestEnvironmentLookupEmpty(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Environment("qa")
	if err == nil || !strings.Contains(err.Error(), "no environments configured") {
		t.Errorf("error = %v, want no-environments message", err)
	}
}

func TestEntityPaths(t *testing.T) {
	cfg := &Config{TemplatesDir: "templates", ISMPoliciesDir: "ism-policies"}
	if got, want := cfg.TemplatesPath("qa"), filepath.Join("templates", "qa"); got != want {
		t.Errorf("TemplatesPath() = %q, want %q", got, want)
	}
	if got, want := cfg.ISMPoliciesPath("prod"), filepath.Join("ism-policies", "prod"); got != want {
		t.Errorf("ISMPoliciesPath() = %q, want %q", got, want)
	}
}
