package config

import (
	"os"
	"strconv"
	"strings"
)

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format KEEPER_SECTION_FIELD and always
// take precedence over file-based configuration. Per-environment overrides
// use KEEPER_ENVIRONMENTS_<NAME>_FIELD with the environment name uppercased
// and dashes replaced by underscores.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("KEEPER_TEMPLATES_DIR"); val != "" {
		cfg.TemplatesDir = val
	}
	if val := os.Getenv("KEEPER_ISM_POLICIES_DIR"); val != "" {
		cfg.ISMPoliciesDir = val
	}

	for name := range cfg.Environments {
		applyEnvironmentEnvOverrides(cfg, name)
	}
}

func applyEnvironmentEnvOverrides(cfg *Config, name string) {
	env := cfg.Environments[name]
	prefix := "KEEPER_ENVIRONMENTS_" + envKey(name) + "_"

	if val := os.Getenv(prefix + "HOST"); val != "" {
		env.Host = val
	}
	if val := os.Getenv(prefix + "PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			env.Port = i
		}
	}
	if val := os.Getenv(prefix + "USERNAME"); val != "" {
		if env.BasicAuth == nil {
			env.BasicAuth = &BasicAuth{}
		}
		env.BasicAuth.Username = val
	}
	if val := os.Getenv(prefix + "PASSWORD"); val != "" {
		if env.BasicAuth == nil {
			env.BasicAuth = &BasicAuth{}
		}
		env.BasicAuth.Password = val
	}

	cfg.Environments[name] = env
}

// envKey converts an environment name to its variable name segment.
func envKey(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
