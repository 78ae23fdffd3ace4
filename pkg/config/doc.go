// Package config loads and validates the keeper configuration file: the set
// of named cluster environments, the local directories holding templates and
// ISM policies, and the glob patterns for entities to ignore. Loading applies
// defaults, merges KEEPER_* environment variable overrides and validates the
// result before any command logic runs.
package config
