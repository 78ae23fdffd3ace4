// Package logging constructs the structured logger used across keeper. Logs
// go to stderr so tabular and structured command output on stdout stays
// machine-consumable; level and format are controlled by root command flags.
package logging
