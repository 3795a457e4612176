// Package app composes the library use cases.
//
// It builds every command and query handler over one entity store and, when observability is configured,
// decorates each of them with the observable wrappers.
package app
