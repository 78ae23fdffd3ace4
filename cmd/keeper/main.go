// Keeper synchronizes OpenSearch index templates and ISM policies between a
// cluster and local YAML files.
//
// It treats the local files as the durable record of desired state and the
// cluster as the live copy, providing:
//   - Environment-aware cluster access (basic auth, AWS SigV4, SOCKS5 proxy)
//   - Diff-and-publish reconciliation with per-entity confirmation
//   - Optimistic concurrency for ISM policy updates
//   - Glob-based entity selection and ignore patterns
//
// Usage:
//
//	# List index templates in the qa cluster
//	keeper templates list --env qa
//
//	# Download all ISM policies to local files
//	keeper ism-policies save --env qa
//
//	# Review and publish local template changes
//	keeper templates publish --env prod --pattern "logs-*"
//
//	# Show version information
//	keeper version
package main

func main() {
	Execute()
}
