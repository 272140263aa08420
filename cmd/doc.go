// Package cmd implements the 1q command line interface: flag parsing, the
// query-generate-review flow, and the config and history maintenance actions.
package cmd
