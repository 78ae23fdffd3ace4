// Package opensearch constructs cluster clients from environment
// configuration: addressing, TLS verification, HTTP basic auth, AWS SigV4
// signing and SOCKS5 proxying. Connectivity is verified eagerly so a command
// fails before any entity processing begins when the cluster is unreachable,
// distinguishable via ErrConnectionFailed and ErrHealthcheckFailed.
package opensearch
