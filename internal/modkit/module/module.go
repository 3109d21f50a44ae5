// Package module defines the minimal contract for a modkit module
package module

// Module is the common surface for modules composed in main
// keep this tiny so modules stay decoupled
type Module interface {
	// Ports returns a module specific port set for cross wiring
	Ports() any
	// Name returns the module name
	Name() string
}
