package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"searchops/keeper/pkg/cli"
)

// Config is the complete keeper configuration, constructed once per command
// invocation and passed explicitly to whatever needs it. There is no ambient
// global configuration state.
type Config struct {
	// Environments maps environment names (qa, prod, ...) to cluster
	// connection settings.
	Environments map[string]Environment `yaml:"environments"`

	// TemplatesDir is the root directory for locally stored index
	// templates; each environment gets its own subdirectory.
	TemplatesDir string `yaml:"templates_dir"`

	// ISMPoliciesDir is the root directory for locally stored ISM policies.
	ISMPoliciesDir string `yaml:"ism_policies_dir"`

	// IgnorePatterns is an ordered list of glob patterns; entities whose
	// name matches any pattern are excluded from list, save and publish.
	IgnorePatterns []string `yaml:"ignore_patterns"`
}

// Environment is the immutable connection bundle for one named cluster.
type Environment struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	UseSSL      *bool  `yaml:"use_ssl"`
	VerifyCerts *bool  `yaml:"verify_certs"`

	// MaxRetries caps retried cluster calls; zero keeps the client default.
	// DisableRetry turns retries off entirely.
	MaxRetries   int  `yaml:"max_retries"`
	DisableRetry bool `yaml:"disable_retry"`

	BasicAuth *BasicAuth `yaml:"basic_auth"`
	AWSAuth   *AWSAuth   `yaml:"aws_auth"`
	Proxy     *Proxy     `yaml:"proxy"`
}

// BasicAuth configures HTTP basic authentication for an environment.
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// AWSAuth configures SigV4 request signing for an environment.
type AWSAuth struct {
	Region  string `yaml:"region"`
	Service string `yaml:"service"`
}

// Proxy configures a SOCKS5 proxy for an environment.
type Proxy struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Environment returns the configuration for the named environment. Unknown
// names report the available environments, since a typo here is the most
// common operator mistake.
func (c *Config) Environment(name string) (Environment, error) {
	env, ok := c.Environments[name]
	if !ok {
		available := c.EnvironmentNames()
		if len(available) == 0 {
			return Environment{}, cli.NewConfigError("environments",
				fmt.Sprintf("environment %q not found: no environments configured", name))
		}
		return Environment{}, cli.NewConfigError("environments",
			fmt.Sprintf("environment %q not found; available environments: %s",
				name, strings.Join(available, ", ")))
	}
	return env, nil
}

// EnvironmentNames returns the configured environment names, sorted.
func (c *Config) EnvironmentNames() []string {
	names := make([]string, 0, len(c.Environments))
	for name := range c.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemplatesPath returns the local template directory for one environment.
func (c *Config) TemplatesPath(env string) string {
	return filepath.Join(c.TemplatesDir, env)
}

// ISMPoliciesPath returns the local ISM policy directory for one environment.
func (c *Config) ISMPoliciesPath(env string) string {
	return filepath.Join(c.ISMPoliciesDir, env)
}
