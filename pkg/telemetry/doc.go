// Package telemetry groups the observability concerns of keeper. For a
// one-shot CLI that is structured logging only, housed in the logging
// subpackage; commands construct a logger once and pass it down explicitly.
package telemetry
