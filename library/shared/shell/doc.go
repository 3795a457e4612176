// Package shell holds the infrastructure side of the library application that every feature slice shares:
// the generic handler contracts, the observability helpers used by the observable decorators,
// the mapping of entity store failures into the domain error taxonomy, and the clock.
//
// Core business rules live in package core and never import shell.
package shell
