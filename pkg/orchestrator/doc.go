// Package orchestrator wires form construction (built-in credential forms or
// formspec definitions) to a renderer from the registry, giving the CLI and
// other callers a single entry point.
package orchestrator
