// Package orchestrator wires the builder → transformers → decorators →
// renderer pipeline behind a single Generate call, with every built-in
// renderer registered by default.
package orchestrator
