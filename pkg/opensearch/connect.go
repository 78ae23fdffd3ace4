package opensearch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/signer/awsv2"
	"golang.org/x/net/proxy"
)

// New creates a cluster client from cfg and verifies connectivity with an
// initial info call. A client that cannot reach or authenticate to the
// cluster is never returned.
func New(ctx context.Context, cfg Config) (*opensearch.Client, error) {
	ocfg := opensearch.Config{
		Addresses:    []string{cfg.Address()},
		MaxRetries:   cfg.MaxRetries,
		DisableRetry: cfg.DisableRetry,
	}
	if cfg.BasicAuth != nil {
		ocfg.Username = cfg.BasicAuth.Username
		ocfg.Password = cfg.BasicAuth.Password
	}

	transport, err := buildTransport(cfg)
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	if transport != nil {
		ocfg.Transport = transport
	}

	if cfg.AWSAuth != nil {
		service := cfg.AWSAuth.Service
		if service == "" {
			service = "es"
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSAuth.Region))
		if err != nil {
			return nil, errors.Join(ErrConnectionFailed, fmt.Errorf("failed to load AWS credentials: %w", err))
		}
		signer, err := awsv2.NewSignerWithService(awsCfg, service)
		if err != nil {
			return nil, errors.Join(ErrConnectionFailed, fmt.Errorf("failed to create SigV4 signer: %w", err))
		}
		ocfg.Signer = signer
	}

	client, err := opensearch.NewClient(ocfg)
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	if err := Healthcheck(client)(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// Healthcheck returns a function that verifies cluster connectivity with an
// info call.
func Healthcheck(client *opensearch.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		res, err := client.Info(client.Info.WithContext(ctx))
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		defer res.Body.Close()
		if res.IsError() {
			return errors.Join(ErrHealthcheckFailed, fmt.Errorf("cluster info: %s", res.String()))
		}
		return nil
	}
}

// buildTransport returns a custom HTTP transport when certificate
// verification is disabled or a SOCKS5 proxy is configured, nil otherwise so
// the client keeps its default transport.
func buildTransport(cfg Config) (*http.Transport, error) {
	if cfg.VerifyCerts && cfg.Proxy == nil {
		return nil, nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !cfg.VerifyCerts {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	if cfg.Proxy != nil {
		var auth *proxy.Auth
		if cfg.Proxy.Username != "" {
			auth = &proxy.Auth{User: cfg.Proxy.Username, Password: cfg.Proxy.Password}
		}
		dialer, err := proxy.SOCKS5("tcp", fmt.Sprintf("%s:%d", cfg.Proxy.Host, cfg.Proxy.Port), auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		contextDialer, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("SOCKS5 dialer does not support context dialing")
		}
		transport.DialContext = contextDialer.DialContext
		transport.Proxy = nil
	}
	return transport, nil
}
