package opensearch

import "fmt"

// Config holds the connection parameters for one cluster, as resolved from an
// environment entry in the keeper configuration file.
type Config struct {
	Host        string
	Port        int
	UseSSL      bool
	VerifyCerts bool

	// BasicAuth enables HTTP basic authentication when set.
	BasicAuth *BasicAuth

	// AWSAuth enables AWS SigV4 request signing when set, for managed
	// clusters fronted by IAM.
	AWSAuth *AWSAuth

	// Proxy routes all cluster traffic through a SOCKS5 proxy when set.
	Proxy *Proxy

	MaxRetries   int
	DisableRetry bool
}

// BasicAuth is a username/password pair for HTTP basic authentication.
type BasicAuth struct {
	Username string
	Password string
}

// AWSAuth selects the region and signing service name for SigV4. Service
// defaults to "es" when empty.
type AWSAuth struct {
	Region  string
	Service string
}

// Proxy describes a SOCKS5 proxy, optionally authenticated.
type Proxy struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Address returns the cluster base URL derived from host, port and the SSL
// flag.
func (c Config) Address() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}
